package adaptor

import (
	"net/http"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

// OTPHandler exposes the signup verification endpoints. Both only talk to
// the bus and the code store; sending and activation happen in the worker.
type OTPHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewOTPHandler(service usecase.AuthService, log *zap.Logger) *OTPHandler {
	return &OTPHandler{
		service: service,
		log:     log,
	}
}

// Generate handles GET /api/otp/generate/{user_id}
func (h *OTPHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.service.RequestOTP(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "request OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP is being sent", nil)
}

// Verify handles POST /api/otp/verify
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.VerifyOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP is correct", nil)
}
