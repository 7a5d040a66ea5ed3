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

type CartService interface {
	Create(ctx context.Context, req *request.CartRequest) (*response.CartResponse, error)
	Get(ctx context.Context, id int64) (*response.CartResponse, error)
	List(ctx context.Context) ([]response.CartResponse, error)
	Update(ctx context.Context, id int64, req *request.CartRequest) (*response.CartResponse, error)
	Delete(ctx context.Context, id int64) error
	TotalPrice(ctx context.Context, userID int64) (*response.CartTotalResponse, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		cartRepo:    repo.Cart,
		productRepo: repo.Product,
		userRepo:    repo.User,
		log:         log.With(zap.String("service", "cart")),
	}
}

// validate checks the line against the referenced user and product
func (cs *cartService) validate(ctx context.Context, req *request.CartRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}
	if req.Quantity <= 0 {
		return validationError("Quantity must be greater than 0")
	}

	user, err := cs.userRepo.FindByID(ctx, req.User)
	if err != nil {
		return fmt.Errorf("find cart user: %w", err)
	}
	if user == nil {
		return validationError("User does not exist")
	}

	product, err := cs.productRepo.FindByID(ctx, req.Product)
	if err != nil {
		return fmt.Errorf("find cart product: %w", err)
	}
	if product == nil {
		return validationError("Product does not exist")
	}
	if req.Quantity > product.Stock {
		return validationError(fmt.Sprintf("Quantity exceeds stock (%d available)", product.Stock))
	}
	return nil
}

func (cs *cartService) Create(ctx context.Context, req *request.CartRequest) (*response.CartResponse, error) {
	if err := cs.validate(ctx, req); err != nil {
		return nil, err
	}

	cart := &entity.Cart{UserID: req.User, ProductID: req.Product, Quantity: req.Quantity}
	if err := cs.cartRepo.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	cs.log.Info("Cart line created",
		zap.Int64("cart_id", cart.ID),
		zap.Int64("user_id", cart.UserID),
		zap.Int64("product_id", cart.ProductID),
	)

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (cs *cartService) Get(ctx context.Context, id int64) (*response.CartResponse, error) {
	cart, err := cs.cartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cart %d: %w", id, err)
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (cs *cartService) List(ctx context.Context) ([]response.CartResponse, error) {
	carts, err := cs.cartRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}

	result := make([]response.CartResponse, len(carts))
	for i, c := range carts {
		result[i] = response.CartToResponse(c)
	}
	return result, nil
}

func (cs *cartService) Update(ctx context.Context, id int64, req *request.CartRequest) (*response.CartResponse, error) {
	if err := cs.validate(ctx, req); err != nil {
		return nil, err
	}

	cart := &entity.Cart{ID: id, UserID: req.User, ProductID: req.Product, Quantity: req.Quantity}
	if err := cs.cartRepo.Update(ctx, cart); err != nil {
		if isNotFound(err) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("update cart %d: %w", id, err)
	}

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (cs *cartService) Delete(ctx context.Context, id int64) error {
	if err := cs.cartRepo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCartNotFound
		}
		return fmt.Errorf("delete cart %d: %w", id, err)
	}
	return nil
}

func (cs *cartService) TotalPrice(ctx context.Context, userID int64) (*response.CartTotalResponse, error) {
	user, err := cs.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	total, err := cs.cartRepo.TotalPriceByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("total price: %w", err)
	}

	return &response.CartTotalResponse{User: userID, TotalAmount: total.Round(2)}, nil
}
