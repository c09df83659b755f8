package ports

import (
	"context"

	"ordering/internal/pkg/outbox"
)

// MessagePublisher delivers outbox messages to the message broker.
// Implementations must be safe for concurrent use and should return
// errs.PublicationError on delivery failure so the dispatcher can retry.
type MessagePublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}
