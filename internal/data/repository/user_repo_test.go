package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userCols = []string{
	"id", "username", "email", "first_name", "last_name", "password",
	"is_active", "is_staff", "is_superuser", "date_joined", "updated_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	email := "ana@example.com"
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(5), "ana", &email, nil, nil, "hash", false, false, false, now, now))

	user, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "ana@example.com", user.EmailAddress())
	assert.False(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	email := "bob@example.com"
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "hash", false, false, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date_joined", "updated_at"}).AddRow(int64(11), now, now))

	user := newUser("bob", email)
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(11), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectExec(`UPDATE users SET is_active`).
		WithArgs(int64(3), true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET is_active`).
		WithArgs(int64(4), true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.SetActive(context.Background(), 3, true))

	err := repo.SetActive(context.Background(), 4, true)
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ana", "ana@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsernameOrEmail(context.Background(), "ana", "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
