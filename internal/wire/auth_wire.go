package wire

import (
	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, otpHandler *adaptor.OTPHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)

	r.Get("/api/otp/generate/{user_id}", otpHandler.Generate)
	r.Post("/api/otp/verify", otpHandler.Verify)
}
