// Package pubsub is a thin topic bus over Redis PUBLISH/SUBSCRIBE.
// Delivery is at-most-once per live subscriber and nothing is persisted.
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	publishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_messages_published_total",
			Help: "Messages published to the event bus",
		},
		[]string{"topic", "status"},
	)
	receivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_messages_received_total",
			Help: "Messages received from the event bus",
		},
		[]string{"topic"},
	)
)

var ErrNoTopics = errors.New("at least one topic is required")

// Message is one delivery from a subscribed topic
type Message struct {
	Topic   string
	Payload string
}

// Subscription yields messages until Close is called or the connection drops
type Subscription interface {
	Messages() <-chan Message
	Close() error
}

type Bus struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewBus(rdb redis.UniversalClient, log *zap.Logger) *Bus {
	return &Bus{
		rdb: rdb,
		log: log.With(zap.String("component", "bus")),
	}
}

// Publish sends payload to topic. It returns once Redis accepted the
// message; it does not wait for any subscriber.
func (b *Bus) Publish(ctx context.Context, topic, payload string) error {
	receivers, err := b.rdb.Publish(ctx, topic, payload).Result()
	if err != nil {
		publishedTotal.WithLabelValues(topic, "error").Inc()
		b.log.Error("Failed to publish event", zap.Error(err), zap.String("topic", topic))
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	publishedTotal.WithLabelValues(topic, "ok").Inc()
	b.log.Debug("Event published",
		zap.String("topic", topic),
		zap.String("payload", payload),
		zap.Int64("receivers", receivers),
	)
	return nil
}

// Subscribe blocks until Redis confirms the subscription, then streams
// messages on the returned Subscription.
func (b *Bus) Subscribe(ctx context.Context, topics ...string) (Subscription, error) {
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}

	ps := b.rdb.Subscribe(ctx, topics...)

	// Wait for confirmation that subscription is created
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %v: %w", topics, err)
	}

	sub := &redisSubscription{
		ps:   ps,
		out:  make(chan Message),
		done: make(chan struct{}),
	}
	go sub.pump()

	b.log.Info("Subscribed to topics", zap.Strings("topics", topics))
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	out  chan Message
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) Messages() <-chan Message {
	return s.out
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}

// pump forwards until the redis channel closes or Close is called
func (s *redisSubscription) pump() {
	defer close(s.out)
	for msg := range s.ps.Channel() {
		receivedTotal.WithLabelValues(msg.Channel).Inc()
		select {
		case s.out <- Message{Topic: msg.Channel, Payload: msg.Payload}:
		case <-s.done:
			return
		}
	}
}
