package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBus(t *testing.T) (*Bus, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewBus(rdb, zap.NewNop()), mr
}

func receive(t *testing.T, sub Subscription) Message {
	t.Helper()
	select {
	case msg, ok := <-sub.Messages():
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus, _ := newBus(t)
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "register", "resend_otp")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(ctx, "register", "9"))
	require.NoError(t, bus.Publish(ctx, "resend_otp", "10"))
	require.NoError(t, bus.Publish(ctx, "unrelated", "11"))
	require.NoError(t, bus.Publish(ctx, "register", "12"))

	assert.Equal(t, Message{Topic: "register", Payload: "9"}, receive(t, sub))
	assert.Equal(t, Message{Topic: "resend_otp", Payload: "10"}, receive(t, sub))
	assert.Equal(t, Message{Topic: "register", Payload: "12"}, receive(t, sub))
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus, _ := newBus(t)
	assert.NoError(t, bus.Publish(context.Background(), "register", "1"))
}

func TestBus_SubscribeNoTopics(t *testing.T) {
	bus, _ := newBus(t)
	_, err := bus.Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrNoTopics)
}

func TestBus_CloseEndsStream(t *testing.T) {
	bus, _ := newBus(t)

	sub, err := bus.Subscribe(context.Background(), "register")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	assert.NoError(t, sub.Close(), "close is idempotent")

	select {
	case _, ok := <-sub.Messages():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("messages channel not closed")
	}
}

func TestBus_PublishRedisDown(t *testing.T) {
	bus, mr := newBus(t)
	mr.Close()

	assert.Error(t, bus.Publish(context.Background(), "register", "1"))
}
