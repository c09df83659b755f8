package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when using an improperly
// initialized Product.
var ErrProductIsNotConstructed = errs.NewValueIsRequiredError(
	"product must be created via NewProduct constructor")

// ProductID is the strongly typed identity of a menu product.
type ProductID struct {
	kernel.UUID
}

// NewProductID generates a fresh product identity.
func NewProductID() ProductID {
	return ProductID{kernel.NewUUID()}
}

// ProductIDFromUUID wraps an existing UUID as a product identity.
// Returns an error if the UUID is not properly constructed.
func ProductIDFromUUID(id kernel.UUID) (ProductID, error) {
	if err := id.Validate(); err != nil {
		return ProductID{}, err
	}
	return ProductID{id}, nil
}

// Product is a menu entry: identity, display name, and the canonical price
// every order item referencing it is validated against. Product is an
// immutable value; confirming an order item's price means replacing the
// item's product reference with the menu's product wholesale.
type Product struct { //nolint:recvcheck //using for validation
	id    ProductID
	name  string
	price kernel.Money

	guard guard.ConstructorGuard
}

// NewProduct creates a menu product with a validated identity, name, and price.
func NewProduct(id ProductID, name string, price kernel.Money) (Product, error) {
	product := Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		product.setID(id),
		product.setName(name),
		product.setPrice(price),
	); err != nil {
		return Product{}, err
	}

	return product, nil
}

// ID returns the product's identity.
func (p Product) ID() ProductID {
	return p.id
}

// Name returns the product's display name.
func (p Product) Name() string {
	return p.name
}

// Price returns the product's canonical price.
func (p Product) Price() kernel.Money {
	return p.price
}

// IsEqual compares two products by their identities.
func (p Product) IsEqual(other Product) bool {
	return p.id.IsEqual(other.id.UUID)
}

// Validate checks if the Product was properly constructed.
func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) setID(id ProductID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
