package request

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type CartRequest struct {
	User     int64 `json:"user" validate:"required,gt=0"`
	Product  int64 `json:"product" validate:"required,gt=0"`
	Quantity int   `json:"quantity"`
}
