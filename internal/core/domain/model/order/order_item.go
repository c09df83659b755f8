package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when using an improperly
// initialized OrderItem.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// OrderItem is a line item owned exclusively by its order. Items have no
// identity or lifecycle outside the aggregate: the line id and the owning
// order id are assigned by Order.Initialize and never reassigned.
//
// The commercial fields carry what the caller declared: unit price,
// quantity, and subtotal. Validation checks the declared price against the
// product's canonical price and the subtotal against price × quantity.
type OrderItem struct {
	// id is the 1-based line identifier, assigned at order initialization
	id int64

	// orderID binds the item to its owning order, assigned at initialization
	orderID OrderID

	// product is the menu product reference; the domain service replaces it
	// with the restaurant's authoritative product before validation
	product restaurant.Product

	// quantity is the number of units ordered (must be positive)
	quantity int

	// price is the declared unit price
	price kernel.Money

	// subTotal is the declared line total
	subTotal kernel.Money

	// guard ensures the item was properly constructed
	guard guard.ConstructorGuard
}

// NewOrderItem creates a line item from caller-declared commercial data.
// The line id and owning order are left unassigned until the order is
// initialized.
func NewOrderItem(product restaurant.Product, quantity int, price kernel.Money, subTotal kernel.Money) (*OrderItem, error) {
	item := &OrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProduct(product),
		item.setQuantity(quantity),
		item.setPrice(price),
		item.setSubTotal(subTotal),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreOrderItem reconstructs a line item from persistence, including the
// identity assigned at initialization.
func RestoreOrderItem(
	id int64,
	orderID OrderID,
	product restaurant.Product,
	quantity int,
	price kernel.Money,
	subTotal kernel.Money,
) (*OrderItem, error) {
	item, err := NewOrderItem(product, quantity, price, subTotal)
	if err != nil {
		return nil, err
	}

	if err = orderID.Validate(); err != nil {
		return nil, err
	}
	if id < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderItemID", fmt.Errorf("%d is not a valid line id", id))
	}

	item.id = id
	item.orderID = orderID
	return item, nil
}

// ID returns the 1-based line identifier.
// Returns 0 if the owning order has not been initialized.
func (i *OrderItem) ID() int64 {
	return i.id
}

// OrderID returns the identity of the owning order.
func (i *OrderItem) OrderID() OrderID {
	return i.orderID
}

// Product returns the menu product reference.
func (i *OrderItem) Product() restaurant.Product {
	return i.product
}

// Quantity returns the number of units ordered.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// Price returns the declared unit price.
func (i *OrderItem) Price() kernel.Money {
	return i.price
}

// SubTotal returns the declared line total.
func (i *OrderItem) SubTotal() kernel.Money {
	return i.subTotal
}

// Validate ensures the OrderItem was created through NewOrderItem.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// IsPriceValid reports whether the declared commercial data is internally
// consistent and matches the product's canonical price: the price must be
// positive, equal the product price, and the subtotal must equal
// price × quantity.
func (i *OrderItem) IsPriceValid() bool {
	expectedSubTotal, err := i.price.Multiply(i.quantity)
	if err != nil {
		return false
	}

	return i.price.IsGreaterThanZero() &&
		i.price.IsEqual(i.product.Price()) &&
		i.subTotal.IsEqual(expectedSubTotal)
}

// initialize binds the item to its owning order and assigns the line id.
// Called exactly once, by Order.Initialize.
func (i *OrderItem) initialize(orderID OrderID, id int64) {
	i.orderID = orderID
	i.id = id
}

// confirmProduct replaces the item's product reference with the menu's
// authoritative product. Called by the aggregate while resolving the order
// against the restaurant snapshot.
func (i *OrderItem) confirmProduct(product restaurant.Product) {
	i.product = product
}

func (i *OrderItem) setProduct(product restaurant.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	i.product = product
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *OrderItem) setSubTotal(subTotal kernel.Money) error {
	if err := subTotal.Validate(); err != nil {
		return err
	}
	i.subTotal = subTotal
	return nil
}
