// Package ports defines the driven-side contracts of the ordering core.
// These interfaces establish boundaries between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items and returns
	// the persisted aggregate. The order must be initialized; an order with
	// the same id must not already exist.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Update persists lifecycle changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identity.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id order.OrderID) (*order.Order, error)

	// GetByTrackingID retrieves an order aggregate by its customer-facing
	// tracking identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	GetByTrackingID(ctx context.Context, trackingID order.TrackingID) (*order.Order, error)
}
