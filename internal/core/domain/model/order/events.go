package order

import (
	"time"
)

// CreatedEvent is the domain event produced once a new order has been
// initialized and validated. It carries the full aggregate and the creation
// timestamp, and is handed to the payment subsystem after the transaction
// that persisted the order commits.
type CreatedEvent struct {
	order     *Order
	createdAt time.Time
}

// NewCreatedEvent creates an order-created event for a validated order.
func NewCreatedEvent(order *Order, createdAt time.Time) CreatedEvent {
	return CreatedEvent{
		order:     order,
		createdAt: createdAt,
	}
}

// Order returns the created order aggregate.
func (e CreatedEvent) Order() *Order {
	return e.order
}

// CreatedAt returns the creation timestamp of the event.
func (e CreatedEvent) CreatedAt() time.Time {
	return e.createdAt
}
