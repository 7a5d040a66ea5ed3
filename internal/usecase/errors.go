package usecase

import (
	"errors"
	"fmt"
)

// Handlers map these to HTTP statuses with errors.Is; wrap them with
// fmt.Errorf("%w") to add context.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound    = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound       = fmt.Errorf("cart %w", ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("group %w", ErrNotFound)
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrInactive           = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("permission denied")

	// OTP engine outcomes
	ErrOTPExpired     = errors.New("OTP expired")
	ErrOTPMismatch    = errors.New("OTP is incorrect")
	ErrDeliveryFailed = errors.New("delivery failed")
	ErrUnexpected     = errors.New("unexpected error")
)

// validationError carries a field-level message while matching ErrValidation
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
