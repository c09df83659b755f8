package commands

import (
	"errors"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderItem is one requested order line: a product reference with the
// quantity and the prices the client saw at checkout. The declared prices are
// verified against the restaurant menu before the order is accepted.
type CreateOrderItem struct { //nolint:recvcheck //using for validation
	productID restaurant.ProductID
	quantity  int
	price     kernel.Money
	subTotal  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderItem creates a requested order line.
// Quantity must be positive; prices must be constructed Money values.
func NewCreateOrderItem(
	productID restaurant.ProductID, quantity int, price, subTotal kernel.Money,
) (CreateOrderItem, error) {
	item := CreateOrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPrice(price),
		item.setSubTotal(subTotal),
	); err != nil {
		return CreateOrderItem{}, err
	}

	return item, nil
}

// ProductID returns the requested product reference.
func (i CreateOrderItem) ProductID() restaurant.ProductID {
	return i.productID
}

// Quantity returns the requested quantity.
func (i CreateOrderItem) Quantity() int {
	return i.quantity
}

// Price returns the unit price the client declared.
func (i CreateOrderItem) Price() kernel.Money {
	return i.price
}

// SubTotal returns the line total the client declared.
func (i CreateOrderItem) SubTotal() kernel.Money {
	return i.subTotal
}

func (i *CreateOrderItem) setProductID(productID restaurant.ProductID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *CreateOrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	i.quantity = quantity
	return nil
}

func (i *CreateOrderItem) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *CreateOrderItem) setSubTotal(subTotal kernel.Money) error {
	if err := subTotal.Validate(); err != nil {
		return err
	}
	i.subTotal = subTotal
	return nil
}

// CreateOrderCommand represents a request to create a new food-delivery
// order: who orders, from which restaurant, delivered where, what items, and
// the total the client expects to pay.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	deliveryAddress order.StreetAddress
	price           kernel.Money
	items           []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// All identities, the address, the total, and at least one item are required.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	deliveryAddress order.StreetAddress,
	price kernel.Money,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setRestaurantID(restaurantID),
		command.setDeliveryAddress(deliveryAddress),
		command.setPrice(price),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identity of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the identity of the restaurant ordered from.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// DeliveryAddress returns the delivery destination.
func (c CreateOrderCommand) DeliveryAddress() order.StreetAddress {
	return c.deliveryAddress
}

// Price returns the declared order total.
func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	out := make([]CreateOrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// ProductIDs returns the distinct product references across all items, in
// first-seen order.
func (c CreateOrderCommand) ProductIDs() []restaurant.ProductID {
	seen := make(map[restaurant.ProductID]struct{}, len(c.items))
	out := make([]restaurant.ProductID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		out = append(out, item.ProductID())
	}
	return out
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress order.StreetAddress) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.price = price
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.guard.Validate(ErrCreateOrderCommandIsNotConstructed); err != nil {
			return err
		}
	}

	c.items = make([]CreateOrderItem, len(items))
	copy(c.items, items)
	return nil
}

// customerIDTyped narrows the raw customer UUID to its typed identity.
func (c CreateOrderCommand) customerIDTyped() (customer.CustomerID, error) {
	return customer.CustomerIDFromUUID(c.customerID)
}

// restaurantIDTyped narrows the raw restaurant UUID to its typed identity.
func (c CreateOrderCommand) restaurantIDTyped() (restaurant.RestaurantID, error) {
	return restaurant.RestaurantIDFromUUID(c.restaurantID)
}
