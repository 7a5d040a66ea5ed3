package wire

import (
	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMail(r chi.Router, mailHandler *adaptor.MailHandler, auth middlewareFunc) {
	r.With(auth).Post("/api/email/send", mailHandler.Send)
}
