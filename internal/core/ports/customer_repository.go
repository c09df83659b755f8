package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
)

// CustomerRepository defines the read contract the ordering core needs for
// customers. Customer management itself lives in another context; order
// creation only verifies existence.
type CustomerRepository interface {
	// Get retrieves a customer reference by identity.
	// Returns errs.ObjectNotFoundError when no such customer exists.
	Get(ctx context.Context, id customer.CustomerID) (*customer.Customer, error)
}
