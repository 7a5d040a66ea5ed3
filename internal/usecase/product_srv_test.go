package usecase

import (
	"context"
	"errors"
	"testing"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[int64]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func TestProductService_CreateRules(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     request.ProductRequest
		wantMsg string
	}{
		{"negative stock", request.ProductRequest{Name: "Mug", Price: decimal.NewFromInt(5), Stock: -1}, "Stock cannot be negative"},
		{"zero price", request.ProductRequest{Name: "Mug", Price: decimal.Zero, Stock: 1}, "Price cannot be negative"},
		{"negative price", request.ProductRequest{Name: "Mug", Price: decimal.NewFromInt(-3), Stock: 1}, "Price cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	resp, err := svc.Create(ctx, &request.ProductRequest{Name: "Mug", Price: decimal.RequireFromString("9.999"), Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, "10", resp.Price.String())
}

func TestProductService_ListPagination(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, &request.ProductRequest{Name: "P", Price: decimal.NewFromInt(1), Stock: 1})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, &request.PaginatedRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Result, 10)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.List(ctx, &request.PaginatedRequest{PageNumber: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Result, 2)
}

func TestProductService_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	_, err = svc.Update(ctx, 1, &request.ProductRequest{Name: "X", Price: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, ErrProductNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, 1), ErrProductNotFound))
}
