package order

import (
	"ordering/internal/core/domain/model/kernel"
)

// OrderID is the strongly typed surrogate identity of an order aggregate.
// It is assigned exactly once, when the order is initialized, and is
// distinct from TrackingID at compile time so the two can never be mixed up.
type OrderID struct {
	kernel.UUID
}

// NewOrderID generates a fresh order identity.
func NewOrderID() OrderID {
	return OrderID{kernel.NewUUID()}
}

// OrderIDFromUUID wraps an existing UUID as an order identity.
// Returns an error if the UUID is not properly constructed.
func OrderIDFromUUID(id kernel.UUID) (OrderID, error) {
	if err := id.Validate(); err != nil {
		return OrderID{}, err
	}
	return OrderID{id}, nil
}

// TrackingID is the customer-facing identifier of an order, used for order
// status queries. It is separate from OrderID and also assigned exactly
// once at initialization.
type TrackingID struct {
	kernel.UUID
}

// NewTrackingID generates a fresh tracking identity.
func NewTrackingID() TrackingID {
	return TrackingID{kernel.NewUUID()}
}

// TrackingIDFromUUID wraps an existing UUID as a tracking identity.
// Returns an error if the UUID is not properly constructed.
func TrackingIDFromUUID(id kernel.UUID) (TrackingID, error) {
	if err := id.Validate(); err != nil {
		return TrackingID{}, err
	}
	return TrackingID{id}, nil
}
