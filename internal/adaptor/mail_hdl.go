package adaptor

import (
	"net/http"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type MailHandler struct {
	service usecase.MailService
	log     *zap.Logger
}

func NewMailHandler(service usecase.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{service: service, log: log}
}

// Send handles POST /api/email/send
func (h *MailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Send(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "send email")
		return
	}

	utils.ResponseSuccess(w, "Email sent", nil)
}
