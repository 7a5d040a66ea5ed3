package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/dto/response"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

// EventPublisher puts a signup event on the bus and returns without waiting
// for anything downstream.
type EventPublisher interface {
	Publish(ctx context.Context, topic entity.Topic, userID int64) error
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error)
	RequestOTP(ctx context.Context, userID int64) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
}

type authService struct {
	users     repository.UserRepository
	otp       OTPService
	publisher EventPublisher
	tokens    *utils.TokenManager
	log       *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	otp OTPService,
	publisher EventPublisher,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:     users,
		otp:       otp,
		publisher: publisher,
		tokens:    tokens,
		log:       log.With(zap.String("service", "auth")),
	}
}

// Register creates an inactive user and announces it on the bus. Code
// generation and delivery happen later in the worker.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	// 2. Username and email must both be unused
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("User %w", ErrAlreadyExists)
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user, inactive until the OTP is verified
	email := req.Email
	user := &entity.User{
		Username:  req.Username,
		Email:     &email,
		FirstName: optional(req.FirstName),
		LastName:  optional(req.LastName),
		Password:  hashed,
		IsActive:  false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	// 5. Announce; a publish failure leaves the user able to use resend
	if err := s.publisher.Publish(ctx, entity.TopicRegister, user.ID); err != nil {
		s.log.Error("Failed to publish register event", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrUserNotFound
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, ErrInactive
	}

	pair, err := s.tokens.IssuePair(claimsFor(user))
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	return &response.LoginResponse{
		Refresh: pair.Refresh,
		Access:  pair.Access,
		User:    response.UserToSummary(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	claims, err := s.tokens.Parse(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		s.log.Warn("Refresh rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	access, _, err := s.tokens.IssueAccess(claimsFor(user))
	if err != nil {
		return nil, err
	}
	return &response.RefreshResponse{Access: access}, nil
}

// RequestOTP asks the worker to (re)issue a code for the user
func (s *authService) RequestOTP(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.publisher.Publish(ctx, entity.TopicResendOTP, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	s.log.Info("OTP resend requested", zap.Int64("user_id", userID))
	return nil
}

// VerifyOTP checks the code and, on success, hands activation to the worker.
// It never touches the active flag itself.
func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}

	if err := s.otp.Verify(ctx, req.UserID, req.OTP); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, entity.TopicVerifyOTPSuccess, req.UserID); err != nil {
		// the code is already consumed; the user must request a new one
		s.log.Error("Failed to publish verify success event", zap.Error(err), zap.Int64("user_id", req.UserID))
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	return nil
}

func claimsFor(user *entity.User) utils.Claims {
	claims := utils.Claims{
		UserID:   user.ID,
		Username: user.Username,
	}
	if user.FirstName != nil {
		claims.FirstName = *user.FirstName
	}
	if user.LastName != nil {
		claims.LastName = *user.LastName
	}
	return claims
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// isNotFound also matches the repository's row-level not found errors
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrProductNotFound) ||
		errors.Is(err, repository.ErrCartNotFound)
}
