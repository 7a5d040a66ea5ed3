package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(now time.Time) *TokenManager {
	m := NewTokenManager(JWTConfig{Secret: "test-secret", AccessMinutes: 5, RefreshHours: 24}, "ecommerce-demo")
	m.now = func() time.Time { return now }
	return m
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := newTestTokens(now)

	pair, err := m.IssuePair(Claims{UserID: 42, Username: "alice", FirstName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(5*time.Minute), pair.AccessExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), pair.RefreshExpiresAt)

	access, err := m.Parse(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, "Alice", access.FirstName)
	assert.Equal(t, "42", access.Subject)

	refresh, err := m.Parse(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestTokenManager_RejectsWrongType(t *testing.T) {
	m := newTestTokens(time.Now())
	pair, err := m.IssuePair(Claims{UserID: 1})
	require.NoError(t, err)

	_, err = m.Parse(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	m := newTestTokens(time.Now())
	other := NewTokenManager(JWTConfig{Secret: "other", AccessMinutes: 5, RefreshHours: 1}, "ecommerce-demo")

	token, _, err := other.IssueAccess(Claims{UserID: 1})
	require.NoError(t, err)

	_, err = m.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	m := newTestTokens(issued)

	token, _, err := m.IssueAccess(Claims{UserID: 1})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := newTestTokens(time.Now())
	_, err := m.Parse("not.a.token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
