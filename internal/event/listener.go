package event

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/pkg/pubsub"

	"go.uber.org/zap"
)

// Subscriber is the receiving side of pubsub.Bus
type Subscriber interface {
	Subscribe(ctx context.Context, topics ...string) (pubsub.Subscription, error)
}

// Enqueuer hands a task to the background worker
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) (string, error)
}

// routes maps each topic to the tasks it starts. Tasks of one topic are
// enqueued separately so one failing does not hold back the others.
var routes = map[entity.Topic][]string{
	entity.TopicRegister:         {entity.TaskGenerateOTP},
	entity.TopicResendOTP:        {entity.TaskGenerateOTP},
	entity.TopicVerifyOTPSuccess: {entity.TaskActivateAccount, entity.TaskWelcomeEmail},
}

// Listener consumes the signup topics one message at a time
type Listener struct {
	sub   Subscriber
	queue Enqueuer
	log   *zap.Logger
}

func NewListener(sub Subscriber, queue Enqueuer, log *zap.Logger) *Listener {
	return &Listener{
		sub:   sub,
		queue: queue,
		log:   log.With(zap.String("component", "listener")),
	}
}

// Run blocks until ctx is cancelled or the subscription ends. A bad
// message is logged and skipped; it never stops the loop.
func (l *Listener) Run(ctx context.Context) error {
	topics := make([]string, len(entity.SignupTopics))
	for i, t := range entity.SignupTopics {
		topics[i] = string(t)
	}

	sub, err := l.sub.Subscribe(ctx, topics...)
	if err != nil {
		return fmt.Errorf("listener subscribe: %w", err)
	}
	defer sub.Close()

	l.log.Info("[EVENT] Listening for signup events", zap.Strings("topics", topics))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("[EVENT] Listener stopping")
			return nil
		case msg, ok := <-sub.Messages():
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("listener: subscription closed")
			}
			l.Dispatch(ctx, msg)
		}
	}
}

// Dispatch routes one message to its tasks
func (l *Listener) Dispatch(ctx context.Context, msg pubsub.Message) {
	log := l.log.With(zap.String("topic", msg.Topic))

	tasks, ok := routes[entity.Topic(msg.Topic)]
	if !ok {
		log.Error("[EVENT] Unknown topic, message dropped", zap.String("payload", msg.Payload))
		return
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(msg.Payload), 10, 64)
	if err != nil || userID <= 0 {
		log.Error("[EVENT] Malformed payload, message dropped", zap.String("payload", msg.Payload))
		return
	}

	log.Info("[EVENT] Received", zap.Int64("user_id", userID))

	for _, name := range tasks {
		id, err := l.queue.Enqueue(ctx, name, entity.SubjectPayload{UserID: userID})
		if err != nil {
			log.Error("[EVENT] Failed to enqueue task",
				zap.Error(err),
				zap.String("task", name),
				zap.Int64("user_id", userID),
			)
			continue
		}
		log.Info("[EVENT] Task enqueued",
			zap.String("task", name),
			zap.String("task_id", id),
			zap.Int64("user_id", userID),
		)
	}
}
