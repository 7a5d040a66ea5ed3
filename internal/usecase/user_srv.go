package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/dto/response"
	"ecommerce-demo/pkg/cache"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

const (
	userListCacheKey = "list_user_info"
	userListCacheTTL = 300 * time.Second
)

type UserService interface {
	List(ctx context.Context) ([]response.UserResponse, error)
	Get(ctx context.Context, id int64) (*response.UserResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, c *cache.Cache, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    c,
		log:      log.With(zap.String("service", "user")),
	}
}

// List serves from the cache when it can; a broken cache only costs a
// database read.
func (us *userService) List(ctx context.Context) ([]response.UserResponse, error) {
	var cached []response.UserResponse
	err := us.cache.GetJSON(ctx, userListCacheKey, &cached)
	if err == nil {
		us.log.Debug("User list served from cache", zap.Int("count", len(cached)))
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		us.log.Warn("Failed to read user list cache", zap.Error(err))
	}

	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]response.UserResponse, len(users))
	for i, user := range users {
		result[i] = response.UserToResponse(user)
	}

	if err := us.cache.SetJSON(ctx, userListCacheKey, result, userListCacheTTL); err != nil {
		us.log.Warn("Failed to cache user list", zap.Error(err))
	}

	us.log.Info("Users retrieved", zap.Int("count", len(result)))
	return result, nil
}

func (us *userService) Get(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	// 2. Load current state
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 3. Username and email stay unique
	if req.Username != nil && *req.Username != user.Username {
		if err := us.ensureFree(ctx, user.ID, us.userRepo.FindByUsername, *req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.EmailAddress() {
		if err := us.ensureFree(ctx, user.ID, us.userRepo.FindByEmail, *req.Email); err != nil {
			return nil, err
		}
		email := *req.Email
		user.Email = &email
	}

	// 4. Apply the rest
	if req.FirstName != nil {
		user.FirstName = optional(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = optional(*req.LastName)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}

	if err := us.userRepo.Update(ctx, user); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		us.log.Error("Failed to update user", zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	// 5. Cached list is stale now
	if err := us.cache.Delete(ctx, userListCacheKey); err != nil {
		us.log.Warn("Failed to invalidate user list cache", zap.Error(err))
	}

	us.log.Info("User updated", zap.Int64("user_id", id))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ensureFree(
	ctx context.Context,
	selfID int64,
	find func(context.Context, string) (*entity.User, error),
	value string,
) error {
	other, err := find(ctx, value)
	if err != nil {
		return fmt.Errorf("check uniqueness: %w", err)
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("User %w", ErrAlreadyExists)
	}
	return nil
}
