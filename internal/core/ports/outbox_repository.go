package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Add runs inside the business transaction; FetchPending and MarkSent are
// used by the dispatcher outside of it.
type OutboxRepository interface {
	// Add queues a message for publication within the current transaction.
	Add(ctx context.Context, message *outbox.Message) error

	// FetchPending retrieves up to limit undelivered messages, oldest first,
	// so that messages for the same aggregate leave in creation order.
	FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkSent records that the message with the given id has been delivered.
	MarkSent(ctx context.Context, id kernel.UUID) error
}
