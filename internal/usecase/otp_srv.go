package usecase

import (
	"context"
	"fmt"
	"time"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/pkg/mailer"
	"ecommerce-demo/pkg/utils"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

// CodeGenerator returns a fresh fixed-length numeric code. accountName
// only labels the throwaway TOTP key.
type CodeGenerator func(accountName string, now time.Time) (string, error)

// OTPService issues and checks one-time signup codes.
//
// Generate supersedes any live code of the subject, stores the new one with
// the configured TTL and then emails it. Verify consumes a matching code
// exactly once; a mismatch leaves the stored code untouched.
type OTPService interface {
	Generate(ctx context.Context, subjectID int64) (*entity.OTPRecord, error)
	Verify(ctx context.Context, subjectID int64, submitted string) error
}

type otpService struct {
	users    repository.UserRepository
	codes    repository.OTPRepository
	mail     mailer.Mailer
	generate CodeGenerator
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewOTPService(
	users repository.UserRepository,
	codes repository.OTPRepository,
	mail mailer.Mailer,
	cfg utils.OTPConfig,
	log *zap.Logger,
) OTPService {
	return NewOTPServiceWithGenerator(users, codes, mail, cfg, TOTPCodeGenerator(cfg), log)
}

func NewOTPServiceWithGenerator(
	users repository.UserRepository,
	codes repository.OTPRepository,
	mail mailer.Mailer,
	cfg utils.OTPConfig,
	gen CodeGenerator,
	log *zap.Logger,
) OTPService {
	ttl := cfg.TTL()
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &otpService{
		users:    users,
		codes:    codes,
		mail:     mail,
		generate: gen,
		ttl:      ttl,
		now:      time.Now,
		log:      log.With(zap.String("service", "otp")),
	}
}

// TOTPCodeGenerator derives each code from a brand new random TOTP secret,
// so consecutive issuances are unrelated.
func TOTPCodeGenerator(cfg utils.OTPConfig) CodeGenerator {
	digits := otp.DigitsSix
	if cfg.Length == 8 {
		digits = otp.DigitsEight
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "ecommerce-demo"
	}

	return func(accountName string, now time.Time) (string, error) {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      issuer,
			AccountName: accountName,
			Period:      30,
			SecretSize:  20,
			Digits:      digits,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			return "", fmt.Errorf("generate TOTP secret: %w", err)
		}

		return totp.GenerateCodeCustom(key.Secret(), now, totp.ValidateOpts{
			Period:    30,
			Digits:    digits,
			Algorithm: otp.AlgorithmSHA1,
		})
	}
}

func (s *otpService) Generate(ctx context.Context, subjectID int64) (*entity.OTPRecord, error) {
	// 1. Subject must exist
	user, err := s.users.FindByID(ctx, subjectID)
	if err != nil {
		s.log.Error("Failed to load user for OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return nil, fmt.Errorf("%w: load user %d: %v", ErrUnexpected, subjectID, err)
	}
	if user == nil {
		s.log.Warn("OTP requested for unknown user", zap.Int64("user_id", subjectID))
		return nil, fmt.Errorf("generate OTP for %d: %w", subjectID, ErrUserNotFound)
	}

	// 2. Fresh code
	now := s.now()
	code, err := s.generate(user.Username, now)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	// 3. Supersede and store
	superseded, err := s.codes.Replace(ctx, subjectID, code, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	record := &entity.OTPRecord{
		SubjectID: subjectID,
		Code:      code,
		IssuedAt:  now,
		TTL:       s.ttl,
	}

	s.log.Info("OTP issued",
		zap.Int64("user_id", subjectID),
		zap.Bool("superseded", superseded),
		zap.Duration("ttl", s.ttl),
	)

	// 4. Notify; the stored code stays valid if delivery fails
	email := user.EmailAddress()
	subject := "Your verification code"
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d seconds.\n",
		user.DisplayName(), code, int(s.ttl.Seconds()))

	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		s.log.Warn("OTP email delivery failed",
			zap.Error(err),
			zap.Int64("user_id", subjectID),
			zap.String("email", email),
		)
		return record, fmt.Errorf("send OTP to user %d: %w: %v", subjectID, ErrDeliveryFailed, err)
	}

	return record, nil
}

func (s *otpService) Verify(ctx context.Context, subjectID int64, submitted string) error {
	result, err := s.codes.Consume(ctx, subjectID, submitted)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	switch result {
	case repository.ConsumeMatched:
		s.log.Info("OTP verified", zap.Int64("user_id", subjectID))
		return nil
	case repository.ConsumeMismatch:
		s.log.Warn("OTP mismatch", zap.Int64("user_id", subjectID))
		return ErrOTPMismatch
	default:
		s.log.Warn("OTP expired or never issued", zap.Int64("user_id", subjectID))
		return ErrOTPExpired
	}
}
