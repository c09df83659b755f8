// Package services contains stateless domain services: business logic that
// spans more than one aggregate and therefore cannot live inside a single
// aggregate root.
package services

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

// OrderService validates a candidate order against a restaurant snapshot and
// initiates it into the Pending state.
//
// It exists because the check spans two aggregates: the order cannot know by
// itself whether its restaurant is active or what the restaurant currently
// charges for each product. The service is stateless and safe for concurrent
// use.
type OrderService struct{}

// NewOrderService creates a new OrderService instance.
func NewOrderService() OrderService {
	return OrderService{}
}

// ValidateAndInitiateOrder runs the full creation-time pipeline on a candidate
// order:
//
//  1. the restaurant must be active
//  2. item products are confirmed against the restaurant menu, substituting
//     canonical product data for whatever the client declared
//  3. the order is initialized (identity, tracking id, Pending status)
//  4. the order's validation pipeline must pass
//
// On success the order is Pending and an order-created domain event is
// returned for publication. Every failure is a domain violation; the order
// must be discarded when an error is returned, as it may be partially
// initialized.
func (s OrderService) ValidateAndInitiateOrder(
	candidate *order.Order, snapshot *restaurant.Restaurant,
) (order.CreatedEvent, error) {
	if err := snapshot.Validate(); err != nil {
		return order.CreatedEvent{}, err
	}

	if !snapshot.IsActive() {
		return order.CreatedEvent{}, errs.NewDomainViolationError(
			fmt.Sprintf("restaurant with id %s is currently not active", snapshot.ID()))
	}

	if err := candidate.ConfirmProductPrices(snapshot.Products()); err != nil {
		return order.CreatedEvent{}, err
	}

	if err := candidate.Initialize(); err != nil {
		return order.CreatedEvent{}, err
	}

	if err := candidate.Validate(); err != nil {
		return order.CreatedEvent{}, err
	}

	return order.NewCreatedEvent(candidate, time.Now().UTC()), nil
}
