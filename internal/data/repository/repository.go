package repository

import (
	"ecommerce-demo/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Permission PermissionRepository
	Product    ProductRepository
	Cart       CartRepository
	OTP        OTPRepository
}

// NewRepository wires the Postgres repositories and the Redis code store
func NewRepository(db database.PgxIface, codes redis.UniversalClient, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Permission: NewPermissionRepository(db, log),
		Product:    NewProductRepository(db, log),
		Cart:       NewCartRepository(db, log),
		OTP:        NewOTPRepository(codes, log),
	}
}
