package usecase

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/pkg/mailer"

	"go.uber.org/zap"
)

// SignupService runs the background half of signup. Each step is a
// separate task, so activation does not depend on the welcome email.
type SignupService interface {
	IssueCode(ctx context.Context, userID int64) error
	Activate(ctx context.Context, userID int64) error
	SendWelcome(ctx context.Context, userID int64) error
}

type signupService struct {
	users repository.UserRepository
	otp   OTPService
	mail  mailer.Mailer
	log   *zap.Logger
}

func NewSignupService(users repository.UserRepository, otp OTPService, mail mailer.Mailer, log *zap.Logger) SignupService {
	return &signupService{
		users: users,
		otp:   otp,
		mail:  mail,
		log:   log.With(zap.String("service", "signup")),
	}
}

func (s *signupService) IssueCode(ctx context.Context, userID int64) error {
	record, err := s.otp.Generate(ctx, userID)
	if err != nil {
		return err
	}
	s.log.Info("Verification code sent", zap.Int64("user_id", record.SubjectID))
	return nil
}

func (s *signupService) Activate(ctx context.Context, userID int64) error {
	if err := s.users.SetActive(ctx, userID, true); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("activate %d: %w", userID, ErrUserNotFound)
		}
		return fmt.Errorf("activate %d: %w", userID, err)
	}
	s.log.Info("Account activated", zap.Int64("user_id", userID))
	return nil
}

func (s *signupService) SendWelcome(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil {
		return fmt.Errorf("welcome %d: %w", userID, ErrUserNotFound)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour account is active. Welcome aboard!\n", user.DisplayName())
	if err := s.mail.Send(ctx, user.EmailAddress(), "Welcome", body); err != nil {
		return fmt.Errorf("welcome %d: %w: %v", userID, ErrDeliveryFailed, err)
	}

	s.log.Info("Welcome email sent", zap.Int64("user_id", userID))
	return nil
}
