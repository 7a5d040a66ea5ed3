package wire

import (
	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, authHandler *adaptor.AuthHandler, userHandler *adaptor.UserHandler, auth middlewareFunc) {
	r.Route("/api/user", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
		})
	})
}
