package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/pkg/pubsub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type enqueued struct {
	Name    string
	Payload entity.SubjectPayload
}

type recordingQueue struct {
	mu    sync.Mutex
	tasks []enqueued
	fail  map[string]bool
}

func (q *recordingQueue) Enqueue(_ context.Context, name string, payload any) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail[name] {
		return "", errors.New("queue down")
	}
	// round-trip through JSON the way the real queue stores it
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	var p entity.SubjectPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", err
	}
	q.tasks = append(q.tasks, enqueued{Name: name, Payload: p})
	return "task-id", nil
}

func (q *recordingQueue) snapshot() []enqueued {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]enqueued(nil), q.tasks...)
}

func TestListener_DispatchRoutes(t *testing.T) {
	tests := []struct {
		topic string
		want  []enqueued
	}{
		{"register", []enqueued{{entity.TaskGenerateOTP, entity.SubjectPayload{UserID: 9}}}},
		{"resend_otp", []enqueued{{entity.TaskGenerateOTP, entity.SubjectPayload{UserID: 9}}}},
		{"verify_otp_success", []enqueued{
			{entity.TaskActivateAccount, entity.SubjectPayload{UserID: 9}},
			{entity.TaskWelcomeEmail, entity.SubjectPayload{UserID: 9}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			q := &recordingQueue{}
			l := NewListener(nil, q, zap.NewNop())

			l.Dispatch(context.Background(), pubsub.Message{Topic: tt.topic, Payload: "9"})
			assert.Equal(t, tt.want, q.snapshot())
		})
	}
}

func TestListener_DropsUnknownAndMalformed(t *testing.T) {
	q := &recordingQueue{}
	l := NewListener(nil, q, zap.NewNop())
	ctx := context.Background()

	l.Dispatch(ctx, pubsub.Message{Topic: "password_reset", Payload: "9"})
	l.Dispatch(ctx, pubsub.Message{Topic: "register", Payload: "nine"})
	l.Dispatch(ctx, pubsub.Message{Topic: "register", Payload: "-3"})
	l.Dispatch(ctx, pubsub.Message{Topic: "register", Payload: ""})
	assert.Empty(t, q.snapshot())

	// loop state is unaffected by the bad messages
	l.Dispatch(ctx, pubsub.Message{Topic: "register", Payload: " 12 "})
	assert.Equal(t, []enqueued{{entity.TaskGenerateOTP, entity.SubjectPayload{UserID: 12}}}, q.snapshot())
}

func TestListener_EnqueueFailureDoesNotBlockSiblingTask(t *testing.T) {
	q := &recordingQueue{fail: map[string]bool{entity.TaskActivateAccount: true}}
	l := NewListener(nil, q, zap.NewNop())

	l.Dispatch(context.Background(), pubsub.Message{Topic: "verify_otp_success", Payload: "5"})
	assert.Equal(t, []enqueued{{entity.TaskWelcomeEmail, entity.SubjectPayload{UserID: 5}}}, q.snapshot())
}

type chanSubscription struct {
	ch     chan pubsub.Message
	closed bool
}

func (s *chanSubscription) Messages() <-chan pubsub.Message { return s.ch }
func (s *chanSubscription) Close() error {
	s.closed = true
	return nil
}

type stubSubscriber struct {
	sub    *chanSubscription
	topics []string
	err    error
}

func (s *stubSubscriber) Subscribe(_ context.Context, topics ...string) (pubsub.Subscription, error) {
	s.topics = topics
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func TestListener_RunProcessesInOrderUntilCancelled(t *testing.T) {
	sub := &chanSubscription{ch: make(chan pubsub.Message)}
	subscriber := &stubSubscriber{sub: sub}
	q := &recordingQueue{}
	l := NewListener(subscriber, q, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	sub.ch <- pubsub.Message{Topic: "register", Payload: "1"}
	sub.ch <- pubsub.Message{Topic: "bogus", Payload: "2"}
	sub.ch <- pubsub.Message{Topic: "resend_otp", Payload: "3"}

	require.Eventually(t, func() bool { return len(q.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}

	assert.Equal(t, []string{"register", "resend_otp", "verify_otp_success"}, subscriber.topics)
	assert.Equal(t, int64(1), q.snapshot()[0].Payload.UserID)
	assert.Equal(t, int64(3), q.snapshot()[1].Payload.UserID)
	assert.True(t, sub.closed)
}

func TestListener_RunSubscribeError(t *testing.T) {
	l := NewListener(&stubSubscriber{err: errors.New("redis down")}, &recordingQueue{}, zap.NewNop())
	assert.Error(t, l.Run(context.Background()))
}

func TestListener_RunSubscriptionClosed(t *testing.T) {
	sub := &chanSubscription{ch: make(chan pubsub.Message)}
	close(sub.ch)
	l := NewListener(&stubSubscriber{sub: sub}, &recordingQueue{}, zap.NewNop())

	assert.Error(t, l.Run(context.Background()))
}

type recordingBus struct {
	topic, payload string
}

func (b *recordingBus) Publish(_ context.Context, topic, payload string) error {
	b.topic, b.payload = topic, payload
	return nil
}

func TestPublisher_EncodesDecimalID(t *testing.T) {
	bus := &recordingBus{}
	p := NewPublisher(bus)

	require.NoError(t, p.Publish(context.Background(), entity.TopicVerifyOTPSuccess, 42))
	assert.Equal(t, "verify_otp_success", bus.topic)
	assert.Equal(t, "42", bus.payload)
}
