package adaptor

import (
	"net/http"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/cart
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list carts")
		return
	}

	utils.ResponseSuccess(w, "Carts retrieved successfully", carts)
}

// Get handles GET /api/cart/{id}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved successfully", cart)
}

// Create handles POST /api/cart
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cart")
		return
	}

	utils.ResponseCreated(w, "Cart created successfully", cart)
}

// Update handles PUT /api/cart/{id}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cart")
		return
	}

	utils.ResponseSuccess(w, "Cart updated successfully", cart)
}

// Delete handles DELETE /api/cart/{id}
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete cart")
		return
	}

	utils.ResponseSuccess(w, "Cart deleted successfully", nil)
}

// TotalPrice handles GET /api/cart/total_price/{id}
func (h *CartHandler) TotalPrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	total, err := h.service.TotalPrice(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "cart total price")
		return
	}

	utils.ResponseSuccess(w, "Total price calculated", total)
}
