package repository

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrCartNotFound = errors.New("cart not found")

type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	FindByID(ctx context.Context, id int64) (*entity.Cart, error)
	FindAll(ctx context.Context) ([]*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, id int64) error
	TotalPriceByUser(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	query := `
		INSERT INTO cart (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, cart.UserID, cart.ProductID, cart.Quantity).Scan(&cart.ID); err != nil {
		r.log.Error("Failed to create cart",
			zap.Error(err),
			zap.Int64("user_id", cart.UserID),
			zap.Int64("product_id", cart.ProductID),
		)
		return fmt.Errorf("create cart for user %d: %w", cart.UserID, err)
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id int64) (*entity.Cart, error) {
	query := `SELECT id, user_id, product_id, quantity FROM cart WHERE id = $1`

	var c entity.Cart
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart", zap.Error(err), zap.Int64("cart_id", id))
		return nil, fmt.Errorf("find cart %d: %w", id, err)
	}

	return &c, nil
}

func (r *cartRepository) FindAll(ctx context.Context) ([]*entity.Cart, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, product_id, quantity FROM cart ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to list carts", zap.Error(err))
		return nil, fmt.Errorf("find all carts: %w", err)
	}
	defer rows.Close()

	var carts []*entity.Cart
	for rows.Next() {
		var c entity.Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		carts = append(carts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}

	return carts, nil
}

func (r *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	query := `UPDATE cart SET user_id = $2, product_id = $3, quantity = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, cart.ID, cart.UserID, cart.ProductID, cart.Quantity)
	if err != nil {
		r.log.Error("Failed to update cart", zap.Error(err), zap.Int64("cart_id", cart.ID))
		return fmt.Errorf("update cart %d: %w", cart.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update cart %d: %w", cart.ID, ErrCartNotFound)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cart WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete cart", zap.Error(err), zap.Int64("cart_id", id))
		return fmt.Errorf("delete cart %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete cart %d: %w", id, ErrCartNotFound)
	}

	return nil
}

// TotalPriceByUser sums price * quantity over the user's cart lines
func (r *cartRepository) TotalPriceByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.price * c.quantity), 0)
		FROM cart c
		JOIN product p ON p.id = c.product_id
		WHERE c.user_id = $1
	`

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to sum cart", zap.Error(err), zap.Int64("user_id", userID))
		return decimal.Zero, fmt.Errorf("total price for user %d: %w", userID, err)
	}

	return total, nil
}
