package wire

import (
	"net/http"

	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

type middlewareFunc = func(http.Handler) http.Handler

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	auth middlewareFunc,
	perm func(codename string) middlewareFunc,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/product", productHandler.List)
	r.Get("/api/product/{id}", productHandler.Get)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.With(perm("product.add_product")).Post("/api/product", productHandler.Create)
		r.With(perm("product.change_product")).Put("/api/product/{id}", productHandler.Update)
		r.With(perm("product.delete_product")).Delete("/api/product/{id}", productHandler.Delete)
	})
}
