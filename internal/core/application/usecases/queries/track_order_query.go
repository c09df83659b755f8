// Package queries contains read-only operations against the data store.
// Queries bypass the domain model and read projections directly, forming the
// read side of the CQRS architecture.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery asks for the current state of an order by its
// customer-facing tracking identifier.
type TrackOrderQuery struct {
	trackingID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the order behind the tracking id.
func NewTrackOrderQuery(trackingID kernel.UUID) (TrackOrderQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackOrderQueryIsNotConstructed if validation fails.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingID returns the tracking identifier being queried.
func (q TrackOrderQuery) TrackingID() kernel.UUID {
	return q.trackingID
}

// TrackOrderQueryResponse is the customer-facing view of an order: its
// lifecycle status and any failure messages accumulated during cancellation.
type TrackOrderQueryResponse struct {
	TrackingID      kernel.UUID
	Status          string
	Price           string
	FailureMessages []string
}
