package usecase

import (
	"context"
	"fmt"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/dto/response"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	Get(ctx context.Context, id int64) (*response.ProductResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	Update(ctx context.Context, id int64, req *request.ProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		log:         log.With(zap.String("service", "product")),
	}
}

func validateProduct(req *request.ProductRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}
	if req.Stock < 0 {
		return validationError("Stock cannot be negative")
	}
	if !req.Price.IsPositive() {
		return validationError("Price cannot be negative")
	}
	return nil
}

func (ps *productService) Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
	}
	if err := ps.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	ps.log.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (ps *productService) Get(ctx context.Context, id int64) (*response.ProductResponse, error) {
	product, err := ps.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (ps *productService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	req.Normalize()

	products, err := ps.productRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		ps.log.Error("Failed to list products",
			zap.Error(err),
			zap.Int("page_number", req.PageNumber),
			zap.Int("page_size", req.PageSize),
		)
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := ps.productRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	result := make([]response.ProductResponse, len(products))
	for i, p := range products {
		result[i] = response.ProductToResponse(p)
	}

	return response.NewPaginatedResponse(result, req.PageNumber, req.PageSize, total), nil
}

func (ps *productService) Update(ctx context.Context, id int64, req *request.ProductRequest) (*response.ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
	}
	if err := ps.productRepo.Update(ctx, product); err != nil {
		if isNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	ps.log.Info("Product updated", zap.Int64("product_id", id))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (ps *productService) Delete(ctx context.Context, id int64) error {
	if err := ps.productRepo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
