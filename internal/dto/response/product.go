package response

import (
	"ecommerce-demo/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type CartResponse struct {
	ID       int64 `json:"id"`
	User     int64 `json:"user"`
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

type CartTotalResponse struct {
	User        int64           `json:"user"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Round(2),
		Stock:       p.Stock,
	}
}

func CartToResponse(c *entity.Cart) CartResponse {
	return CartResponse{
		ID:       c.ID,
		User:     c.UserID,
		Product:  c.ProductID,
		Quantity: c.Quantity,
	}
}
