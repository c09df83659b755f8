// Package outbox implements the message side of the transactional outbox
// pattern. A Message is stored in the same database transaction as the state
// change it announces, and a background dispatcher later delivers pending
// messages to the broker. Delivery is at-least-once; consumers deduplicate
// by message id.
package outbox

import (
	"encoding/json"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrMessageIsNotConstructed is returned when using an improperly
// initialized Message.
var ErrMessageIsNotConstructed = errs.NewValueIsRequiredError(
	"outbox message must be created via NewMessage or RestoreMessage")

// Message is a single event queued for publication. The payload is opaque
// JSON; the outbox never interprets it.
type Message struct {
	id          kernel.UUID
	eventType   string
	aggregateID kernel.UUID
	payload     json.RawMessage
	createdAt   time.Time
	sentAt      *time.Time

	guard guard.ConstructorGuard
}

// NewMessage queues a payload for publication. The payload is marshalled to
// JSON immediately so that a non-serializable event fails inside the business
// transaction instead of at dispatch time.
func NewMessage(eventType string, aggregateID kernel.UUID, payload any, createdAt time.Time) (*Message, error) {
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return &Message{
		id:          kernel.NewUUID(),
		eventType:   eventType,
		aggregateID: aggregateID,
		payload:     data,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreMessage reconstructs a persisted message. Used by repositories when
// rehydrating pending messages for dispatch.
func RestoreMessage(
	id kernel.UUID,
	eventType string,
	aggregateID kernel.UUID,
	payload json.RawMessage,
	createdAt time.Time,
	sentAt *time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}

	return &Message{
		id:          id,
		eventType:   eventType,
		aggregateID: aggregateID,
		payload:     payload,
		createdAt:   createdAt,
		sentAt:      sentAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ID returns the unique message identity, used by consumers to deduplicate.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// EventType returns the event type, e.g. "order.created". Used as the
// message key header and for routing.
func (m *Message) EventType() string {
	return m.eventType
}

// AggregateID returns the identity of the aggregate the event concerns.
// Messages for the same aggregate are delivered in creation order.
func (m *Message) AggregateID() kernel.UUID {
	return m.aggregateID
}

// Payload returns the JSON event body.
func (m *Message) Payload() json.RawMessage {
	return m.payload
}

// CreatedAt returns the time the message was queued.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// SentAt returns the delivery time, or nil while the message is pending.
func (m *Message) SentAt() *time.Time {
	return m.sentAt
}

// IsSent reports whether the message has been delivered to the broker.
func (m *Message) IsSent() bool {
	return m.sentAt != nil
}

// MarkSent records the delivery time. Marking an already delivered message
// again is a domain violation: it would rewrite delivery history.
func (m *Message) MarkSent(at time.Time) error {
	if m.sentAt != nil {
		return errs.NewDomainViolationError("outbox message is already marked as sent")
	}
	m.sentAt = &at
	return nil
}

// Validate ensures the Message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}
