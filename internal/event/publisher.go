// Package event connects the signup flow to the bus: the API publishes
// user ids on topics and the listener turns them into worker tasks.
package event

import (
	"context"
	"strconv"

	"ecommerce-demo/internal/data/entity"
)

// Bus is the publishing side of pubsub.Bus
type Bus interface {
	Publish(ctx context.Context, topic, payload string) error
}

type Publisher struct {
	bus Bus
}

func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish sends the user id as a decimal string
func (p *Publisher) Publish(ctx context.Context, topic entity.Topic, userID int64) error {
	return p.bus.Publish(ctx, string(topic), strconv.FormatInt(userID, 10))
}
