// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// StatusChangedMessage is the JSON value of every published message.
type StatusChangedMessage struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order.StatusChangedEvent values keyed by order id, so every
// change of one order lands on the same partition in order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher connects a writer to brokers for topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, events ...order.StatusChangedEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(StatusChangedMessage{
			OrderID:       e.OrderID.String(),
			CustomerEmail: e.CustomerEmail,
			Status:        e.Status.String(),
			OccurredAt:    e.OccurredAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.EventName(), err)
		}

		headers := headerCarrier{{Key: "event", Value: []byte(e.EventName())}}
		otel.GetTextMapPropagator().Inject(ctx, &headers)

		msgs = append(msgs, kafka.Message{
			Key:     []byte(e.OrderID.String()),
			Value:   value,
			Headers: headers,
			Time:    e.OccurredAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d order events: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards every event. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...order.StatusChangedEvent) error { return nil }
