package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/outbox"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingWriter records written messages and fails on demand.
type capturingWriter struct {
	messages []segmentio.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...segmentio.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func testMessage(t *testing.T) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(
		"order.created",
		kernel.NewUUID(),
		map[string]string{"orderId": "42"},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return message
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("delivers message keyed by aggregate id", func(t *testing.T) {
		writer := &capturingWriter{}
		publisher := NewPublisher(writer)
		message := testMessage(t)

		err := publisher.Publish(context.Background(), message)

		require.NoError(t, err)
		require.Len(t, writer.messages, 1)

		written := writer.messages[0]
		assert.Equal(t, message.AggregateID().String(), string(written.Key))
		assert.JSONEq(t, `{"orderId":"42"}`, string(written.Value))

		headers := map[string]string{}
		for _, h := range written.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, message.ID().String(), headers["message-id"])
		assert.Equal(t, "order.created", headers["event-type"])
	})

	t.Run("writer failure becomes publication error", func(t *testing.T) {
		writer := &capturingWriter{err: errors.New("broker unavailable")}
		publisher := NewPublisher(writer)
		message := testMessage(t)

		err := publisher.Publish(context.Background(), message)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPublicationFailed)

		var pubErr *errs.PublicationError
		require.ErrorAs(t, err, &pubErr)
		assert.Equal(t, message.ID().String(), pubErr.MessageID)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		writer := &capturingWriter{err: errors.New("broker unavailable")}
		publisher := NewPublisher(writer)
		message := testMessage(t)

		for i := 0; i < 5; i++ {
			err := publisher.Publish(context.Background(), message)
			require.Error(t, err)
		}

		// Breaker is open now: the writer is no longer reached even when
		// it would succeed.
		writer.err = nil
		err := publisher.Publish(context.Background(), message)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPublicationFailed)
		assert.Empty(t, writer.messages)
	})

	t.Run("rejects zero value message", func(t *testing.T) {
		publisher := NewPublisher(&capturingWriter{})

		err := publisher.Publish(context.Background(), &outbox.Message{})

		assert.Error(t, err)
	})
}
