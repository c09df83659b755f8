// Package customer provides the Customer entity referenced by orders.
// The ordering core only needs to verify that a customer exists before an
// order is created; customer management itself belongs to another context.
package customer

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly
// initialized Customer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// CustomerID is the strongly typed identity of a customer.
type CustomerID struct {
	kernel.UUID
}

// NewCustomerID generates a fresh customer identity.
func NewCustomerID() CustomerID {
	return CustomerID{kernel.NewUUID()}
}

// CustomerIDFromUUID wraps an existing UUID as a customer identity.
// Returns an error if the UUID is not properly constructed.
func CustomerIDFromUUID(id kernel.UUID) (CustomerID, error) {
	if err := id.Validate(); err != nil {
		return CustomerID{}, err
	}
	return CustomerID{id}, nil
}

// Customer is the reference entity used by the order creation workflow.
// Orders hold customers by identifier only and never own or mutate them.
type Customer struct {
	id CustomerID

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer reference with a validated identity.
func NewCustomer(id CustomerID) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Customer{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the customer's identity.
func (c *Customer) ID() CustomerID {
	return c.id
}

// Validate ensures the Customer was created through NewCustomer.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}
