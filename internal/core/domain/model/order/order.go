package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when attempting to create an order
	// without any line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order represents a food-delivery order. It is the aggregate root that owns
// the order's line items and manages the lifecycle from creation through
// payment, approval, and cancellation.
//
// Order follows these invariants:
//   - The declared total equals the sum of all item subtotals and is
//     strictly positive (checked once at validation; the commercial fields
//     are immutable afterwards)
//   - Every item's declared price matches its product's canonical price
//   - The order id and tracking id are assigned exactly once, at
//     initialization, and never before
//   - Status transitions only move forward along the lifecycle graph
//
// An order is built from commercial data only (customer, restaurant,
// address, price, items), then initialized exactly once, validated exactly
// once, persisted, and afterwards mutated only through the guarded
// lifecycle operations Pay, Approve, InitCancel, and Cancel.
type Order struct {
	// id is the unique identifier, assigned at initialization
	id OrderID

	// customerID references the ordering customer (never owned)
	customerID customer.CustomerID

	// restaurantID references the serving restaurant (never owned)
	restaurantID restaurant.RestaurantID

	// deliveryAddress is the delivery destination
	deliveryAddress StreetAddress

	// price is the declared order total
	price kernel.Money

	// items are the owned line items, in serving order
	items []*OrderItem

	// trackingID is the customer-facing identifier, assigned at initialization
	trackingID TrackingID

	// status is the current lifecycle state (Unknown before initialization)
	status Status

	// failureMessages accumulates human-readable failure reasons, append-only
	failureMessages []string

	// guard ensures the order was created via NewOrder
	guard guard.ConstructorGuard
}

// NewOrder creates a candidate order from caller-supplied commercial data.
// The order carries no identity, tracking id, or status until Initialize is
// called; this decouples building a candidate from committing it to
// existence, so validation can run against a fully initialized but not yet
// persisted instance.
func NewOrder(
	customerID customer.CustomerID,
	restaurantID restaurant.RestaurantID,
	deliveryAddress StreetAddress,
	price kernel.Money,
	items []*OrderItem,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setDeliveryAddress(deliveryAddress),
		order.setPrice(price),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs a persisted order, including the identity and
// status assigned at initialization. Used by repositories when rehydrating
// aggregates from the database.
func RestoreOrder(
	id OrderID,
	customerID customer.CustomerID,
	restaurantID restaurant.RestaurantID,
	deliveryAddress StreetAddress,
	price kernel.Money,
	items []*OrderItem,
	trackingID TrackingID,
	status Status,
	failureMessages []string,
) (*Order, error) {
	order, err := NewOrder(customerID, restaurantID, deliveryAddress, price, items)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		id.Validate(),
		trackingID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	order.id = id
	order.trackingID = trackingID
	order.status = status
	order.failureMessages = filterEmpty(failureMessages)
	return order, nil
}

// Initialize commits the candidate order to existence: it assigns a fresh
// order id and tracking id, sets the status to Pending, and binds every item
// to this order with a sequential 1-based line id.
//
// An order can be initialized exactly once. A second call, or a call on an
// order restored from persistence, fails with a domain violation.
func (o *Order) Initialize() error {
	if o.id.Validate() == nil || o.status != Unknown {
		return errs.NewDomainViolationError("order is not in correct state for initialization")
	}

	o.id = NewOrderID()
	o.trackingID = NewTrackingID()
	o.status = Pending
	o.initializeItems()
	return nil
}

// Validate runs the creation-time validation pipeline:
//
//  1. the order must be initialized and still Pending
//  2. the declared total must be strictly positive
//  3. every item's declared price must match its product's canonical price,
//     and the declared total must equal the sum of item subtotals
//
// Validation inspects state only and performs no mutation, so it is safe to
// re-run, though the creation workflow runs it exactly once. Any failed
// check returns a domain violation naming the violated rule and, for
// item-level failures, the offending product id.
func (o *Order) Validate() error {
	if err := o.validateConstructed(); err != nil {
		return err
	}
	if err := o.validateInitialState(); err != nil {
		return err
	}
	if err := o.validateTotalPrice(); err != nil {
		return err
	}
	return o.validateItemsPrice()
}

// Pay marks the order as paid. Requires Pending status.
func (o *Order) Pay() error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Approve marks the paid order as approved by the restaurant.
// Requires Paid status; Approved is the terminal success state.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// InitCancel starts the compensation path for a paid order and records the
// supplied failure messages. Requires Paid status.
func (o *Order) InitCancel(messages []string) error {
	newStatus, err := o.status.InitCancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updateFailureMessages(messages)
	return nil
}

// Cancel marks the order as cancelled and records the supplied failure
// messages. Allowed from Pending (cancelled before payment) and from
// Cancelling (compensation finished).
func (o *Order) Cancel(messages []string) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updateFailureMessages(messages)
	return nil
}

// ConfirmProductPrices resolves every item against the restaurant's menu and
// replaces the item's product reference with the authoritative menu product,
// so subsequent validation compares declared prices against the canonical
// ones rather than anything the client supplied.
//
// Returns a domain violation naming the product id if an item references a
// product the menu does not carry.
func (o *Order) ConfirmProductPrices(products []restaurant.Product) error {
	menu := make(map[restaurant.ProductID]restaurant.Product, len(products))
	for _, product := range products {
		menu[product.ID()] = product
	}

	for _, item := range o.items {
		menuProduct, ok := menu[item.Product().ID()]
		if !ok {
			return errs.NewDomainViolationError(
				fmt.Sprintf("product %s is not available in restaurant menu", item.Product().ID()))
		}
		item.confirmProduct(menuProduct)
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id.UUID)
}

// ID returns the order's unique identifier.
// The identifier is only valid after Initialize.
func (o *Order) ID() OrderID {
	return o.id
}

// CustomerID returns the identity of the ordering customer.
func (o *Order) CustomerID() customer.CustomerID {
	return o.customerID
}

// RestaurantID returns the identity of the serving restaurant.
func (o *Order) RestaurantID() restaurant.RestaurantID {
	return o.restaurantID
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() StreetAddress {
	return o.deliveryAddress
}

// Price returns the declared order total.
func (o *Order) Price() kernel.Money {
	return o.price
}

// Items returns the order's line items in serving order.
func (o *Order) Items() []*OrderItem {
	out := make([]*OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

// TrackingID returns the customer-facing tracking identifier.
// The identifier is only valid after Initialize.
func (o *Order) TrackingID() TrackingID {
	return o.trackingID
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// FailureMessages returns the accumulated failure messages in insertion order.
func (o *Order) FailureMessages() []string {
	out := make([]string, len(o.failureMessages))
	copy(out, o.failureMessages)
	return out
}

// updateFailureMessages appends the non-empty entries of messages to the
// accumulated list, preserving prior entries and insertion order.
func (o *Order) updateFailureMessages(messages []string) {
	filtered := filterEmpty(messages)
	if len(filtered) == 0 {
		return
	}

	if o.failureMessages == nil {
		o.failureMessages = filtered
		return
	}
	o.failureMessages = append(o.failureMessages, filtered...)
}

func filterEmpty(messages []string) []string {
	if messages == nil {
		return nil
	}

	filtered := make([]string, 0, len(messages))
	for _, message := range messages {
		if message != "" {
			filtered = append(filtered, message)
		}
	}
	return filtered
}

func (o *Order) validateConstructed() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// validateInitialState checks the order is initialized and still in its
// initial Pending state, i.e. identity has been assigned and no lifecycle
// transition has happened yet.
func (o *Order) validateInitialState() error {
	if err := errors.Join(o.id.Validate(), o.trackingID.Validate()); err != nil {
		return errs.NewDomainViolationErrorWithCause("order is not in correct state for validation", err)
	}
	if o.status != Pending {
		return errs.NewDomainViolationError(
			fmt.Sprintf("order in %s status is not in correct state for validation", o.status))
	}
	return nil
}

func (o *Order) validateTotalPrice() error {
	if !o.price.IsGreaterThanZero() {
		return errs.NewDomainViolationError("total price must be greater than zero")
	}
	return nil
}

func (o *Order) validateItemsPrice() error {
	itemsTotal := kernel.ZeroMoney()
	for _, item := range o.items {
		if !item.IsPriceValid() {
			return errs.NewDomainViolationError(
				fmt.Sprintf("order item price %s is not valid for product %s",
					item.Price(), item.Product().ID()))
		}

		sum, err := itemsTotal.Add(item.SubTotal())
		if err != nil {
			return err
		}
		itemsTotal = sum
	}

	if !o.price.IsEqual(itemsTotal) {
		return errs.NewDomainViolationError(
			fmt.Sprintf("total price %s is not equal to order items total %s", o.price, itemsTotal))
	}
	return nil
}

func (o *Order) initializeItems() {
	for index, item := range o.items {
		item.initialize(o.id, int64(index)+1)
	}
}

func (o *Order) setCustomerID(customerID customer.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID restaurant.RestaurantID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress StreetAddress) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}

func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]*OrderItem, len(items))
	copy(o.items, items)
	return nil
}
