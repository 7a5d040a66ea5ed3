package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_ListIsCached(t *testing.T) {
	rdb, mr := newRedis(t)
	users := newFakeUserRepo(testUser(1, "ana", "ana@example.com"))
	svc := NewUserService(users, cache.New(rdb), zap.NewNop())
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, mr.Exists("list_user_info"))
	assert.Equal(t, 300*time.Second, mr.TTL("list_user_info"))

	// served from cache even when the database fails
	users.err = errStoreDown
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana", list[0].Username)
}

func TestUserService_UpdateInvalidatesCache(t *testing.T) {
	rdb, mr := newRedis(t)
	users := newFakeUserRepo(testUser(1, "ana", "ana@example.com"), testUser(2, "bob", "bob@example.com"))
	svc := NewUserService(users, cache.New(rdb), zap.NewNop())
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	first := "Ana"
	resp, err := svc.Update(ctx, 1, &request.UpdateUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.FirstName)
	assert.False(t, mr.Exists("list_user_info"))
}

func TestUserService_UpdateUniqueness(t *testing.T) {
	rdb, _ := newRedis(t)
	users := newFakeUserRepo(testUser(1, "ana", "ana@example.com"), testUser(2, "bob", "bob@example.com"))
	svc := NewUserService(users, cache.New(rdb), zap.NewNop())
	ctx := context.Background()

	taken := "bob@example.com"
	_, err := svc.Update(ctx, 1, &request.UpdateUserRequest{Email: &taken})
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	name := "bob"
	_, err = svc.Update(ctx, 1, &request.UpdateUserRequest{Username: &name})
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	_, err = svc.Update(ctx, 404, &request.UpdateUserRequest{})
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
