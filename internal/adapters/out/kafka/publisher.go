package kafka

import (
	"context"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/outbox"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

// messageWriter abstracts the kafka writer for testability.
// *kafka.Writer satisfies it.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher delivers outbox messages to a Kafka topic.
//
// Messages are keyed by aggregate id so that all events of one order land
// in the same partition and keep their creation order. Writes go through a
// circuit breaker: when the broker is down the breaker opens and the
// dispatcher backs off instead of hammering a dead connection.
type Publisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker
}

// NewWriter builds a kafka writer for the given brokers and topic with the
// settings the publisher expects.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// NewPublisher creates a publisher over the given writer.
func NewPublisher(writer messageWriter) *Publisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "kafka-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Publisher{writer: writer, breaker: breaker}
}

// Publish delivers a single outbox message.
// Returns errs.PublicationError on any delivery failure, including an open
// circuit breaker.
func (p *Publisher) Publish(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(message.AggregateID().String()),
			Value: message.Payload(),
			Time:  message.CreatedAt(),
			Headers: []kafka.Header{
				{Key: "message-id", Value: []byte(message.ID().String())},
				{Key: "event-type", Value: []byte(message.EventType())},
			},
		})
	})
	if err != nil {
		return errs.NewPublicationErrorWithCause(message.ID().String(), err)
	}

	return nil
}
