package wire

import (
	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, auth middlewareFunc) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", cartHandler.List)
		r.Post("/", cartHandler.Create)
		r.Get("/total_price/{id}", cartHandler.TotalPrice)
		r.Get("/{id}", cartHandler.Get)
		r.Put("/{id}", cartHandler.Update)
		r.Delete("/{id}", cartHandler.Delete)
	})
}
