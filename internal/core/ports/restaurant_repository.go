package ports

import (
	"context"

	"ordering/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the read contract for restaurant snapshots.
// The snapshot carries activity status and the products referenced by an
// order, priced as of the moment of the query.
type RestaurantRepository interface {
	// Get retrieves the restaurant with the given identity, restricted to
	// the listed products. Products the restaurant does not carry are simply
	// absent from the snapshot; the domain turns that into a menu violation.
	// Returns errs.ObjectNotFoundError when no such restaurant exists.
	Get(ctx context.Context, id restaurant.RestaurantID,
		productIDs []restaurant.ProductID) (*restaurant.Restaurant, error)
}
