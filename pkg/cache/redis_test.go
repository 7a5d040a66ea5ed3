package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_JSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	type row struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	var got []row
	assert.ErrorIs(t, c.GetJSON(ctx, "list_user_info", &got), ErrMiss)

	require.NoError(t, c.SetJSON(ctx, "list_user_info", []row{{1, "alice"}}, 300*time.Second))
	assert.Equal(t, 300*time.Second, mr.TTL("list_user_info"))

	require.NoError(t, c.GetJSON(ctx, "list_user_info", &got))
	assert.Equal(t, []row{{1, "alice"}}, got)

	mr.FastForward(301 * time.Second)
	assert.ErrorIs(t, c.GetJSON(ctx, "list_user_info", &got), ErrMiss)
}

func TestCache_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 1, 0))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestCache_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, mr.Set("k", "{broken"))

	var v map[string]any
	err := c.GetJSON(context.Background(), "k", &v)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
