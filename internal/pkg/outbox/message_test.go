package outbox_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should queue a pending message with serialized payload", func(t *testing.T) {
		aggregateID := kernel.NewUUID()

		message, err := outbox.NewMessage("order.created", aggregateID,
			map[string]string{"orderId": aggregateID.String()}, now)

		require.NoError(t, err)
		assert.NoError(t, message.ID().Validate())
		assert.Equal(t, "order.created", message.EventType())
		assert.True(t, message.AggregateID().IsEqual(aggregateID))
		assert.JSONEq(t, `{"orderId":"`+aggregateID.String()+`"}`, string(message.Payload()))
		assert.Equal(t, now, message.CreatedAt())
		assert.False(t, message.IsSent())
		assert.Nil(t, message.SentAt())
	})

	t.Run("should fail with empty event type", func(t *testing.T) {
		_, err := outbox.NewMessage("", kernel.NewUUID(), struct{}{}, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unconstructed aggregate id", func(t *testing.T) {
		_, err := outbox.NewMessage("order.created", kernel.UUID{}, struct{}{}, now)

		require.Error(t, err)
	})

	t.Run("should fail with non-serializable payload", func(t *testing.T) {
		_, err := outbox.NewMessage("order.created", kernel.NewUUID(), func() {}, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMessage_MarkSent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("records delivery time once", func(t *testing.T) {
		message, err := outbox.NewMessage("order.created", kernel.NewUUID(), struct{}{}, now)
		require.NoError(t, err)

		sentAt := now.Add(time.Second)
		require.NoError(t, message.MarkSent(sentAt))

		assert.True(t, message.IsSent())
		require.NotNil(t, message.SentAt())
		assert.Equal(t, sentAt, *message.SentAt())
	})

	t.Run("marking twice is a domain violation", func(t *testing.T) {
		message, err := outbox.NewMessage("order.created", kernel.NewUUID(), struct{}{}, now)
		require.NoError(t, err)
		require.NoError(t, message.MarkSent(now))

		err = message.MarkSent(now.Add(time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDomainViolation)
	})
}

func TestRestoreMessage(t *testing.T) {
	now := time.Now().UTC()
	sentAt := now.Add(time.Second)

	t.Run("restores a delivered message", func(t *testing.T) {
		id := kernel.NewUUID()
		aggregateID := kernel.NewUUID()

		message, err := outbox.RestoreMessage(
			id, "order.created", aggregateID, []byte(`{"k":"v"}`), now, &sentAt)

		require.NoError(t, err)
		assert.True(t, message.ID().IsEqual(id))
		assert.True(t, message.IsSent())
	})

	t.Run("rejects unconstructed message id", func(t *testing.T) {
		_, err := outbox.RestoreMessage(
			kernel.UUID{}, "order.created", kernel.NewUUID(), nil, now, nil)

		require.Error(t, err)
	})
}
