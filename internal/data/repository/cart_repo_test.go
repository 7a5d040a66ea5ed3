package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCartRepository_TotalPriceByUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCartRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(p.price \* c.quantity\), 0\)`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(decimal.RequireFromString("59.97")))

	total, err := repo.TotalPriceByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("59.97").Equal(total))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCartRepository(mock, zap.NewNop())

	mock.ExpectExec(`DELETE FROM cart`).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 8)
	assert.True(t, errors.Is(err, ErrCartNotFound))
}
