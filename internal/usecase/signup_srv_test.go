package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignupService_Activate(t *testing.T) {
	users := newFakeUserRepo(testUser(42, "user42", "u42@example.com"))
	svc := NewSignupService(users, &stubOTP{}, &fakeMailer{}, zap.NewNop())

	require.NoError(t, svc.Activate(context.Background(), 42))
	assert.True(t, users.get(42).IsActive)

	err := svc.Activate(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestSignupService_WelcomeIndependentOfActivation(t *testing.T) {
	users := newFakeUserRepo(testUser(42, "user42", "u42@example.com"))
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := NewSignupService(users, &stubOTP{}, mail, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Activate(ctx, 42))

	err := svc.SendWelcome(ctx, 42)
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
	assert.True(t, users.get(42).IsActive, "a failed welcome email leaves the account active")
}

func TestSignupService_SendWelcome(t *testing.T) {
	users := newFakeUserRepo(testUser(42, "user42", "u42@example.com"))
	mail := &fakeMailer{}
	svc := NewSignupService(users, &stubOTP{}, mail, zap.NewNop())

	require.NoError(t, svc.SendWelcome(context.Background(), 42))
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "u42@example.com", mail.sent[0].To)

	err := svc.SendWelcome(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestSignupService_IssueCode(t *testing.T) {
	otp := &stubOTP{}
	svc := NewSignupService(newFakeUserRepo(), otp, &fakeMailer{}, zap.NewNop())

	assert.NoError(t, svc.IssueCode(context.Background(), 9))
}
