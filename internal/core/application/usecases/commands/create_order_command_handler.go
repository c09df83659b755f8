package commands

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
	"ordering/internal/pkg/outbox"
)

// OrderCreatedEventType is the outbox event type queued when an order is
// accepted. Downstream contexts (payment) subscribe to it.
const OrderCreatedEventType = "order.created"

// CreateOrderResponse is the result of a successfully created order: the
// customer-facing tracking id and the initial lifecycle status.
type CreateOrderResponse struct {
	OrderID    kernel.UUID
	TrackingID kernel.UUID
	Status     order.Status
	Message    string
}

// orderCreatedPayload is the wire body of the order-created event.
type orderCreatedPayload struct {
	OrderID    string    `json:"orderId"`
	TrackingID string    `json:"trackingId"`
	CustomerID string    `json:"customerId"`
	Price      string    `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateOrderCommandHandler handles the order creation workflow. Everything
// from the customer check to queueing the order-created event happens in a
// single transaction, so either the order and its event both become durable
// or neither does.
type CreateOrderCommandHandler struct {
	uowFactory   CreateOrderUoWFactory
	orderService services.OrderService
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a CreateOrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		orderService: services.NewOrderService(),
	}
}

// Handle processes the order creation command:
//
//  1. the customer must exist
//  2. the restaurant snapshot is loaded for the requested products
//  3. a candidate order is built from the request
//  4. the domain service validates and initiates it
//  5. the order is persisted and the created event queued in the outbox
//  6. the transaction commits
//
// The customer check runs first so an unknown customer never costs a
// restaurant lookup. No event is queued unless the order is persisted, and
// neither survives if the commit fails.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderCommand,
) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	customerID, err := cmd.customerIDTyped()
	if err != nil {
		return CreateOrderResponse{}, err
	}
	restaurantID, err := cmd.restaurantIDTyped()
	if err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CustomerRepository().Get(ctx, customerID); err != nil {
		return CreateOrderResponse{}, err
	}

	snapshot, err := uow.RestaurantRepository().Get(ctx, restaurantID, cmd.ProductIDs())
	if err != nil {
		return CreateOrderResponse{}, err
	}

	candidate, err := buildCandidateOrder(cmd, customerID, restaurantID, snapshot)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	event, err := h.orderService.ValidateAndInitiateOrder(candidate, snapshot)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	persisted, err := uow.OrderRepository().Add(ctx, candidate)
	if err != nil {
		return CreateOrderResponse{}, err
	}
	if persisted == nil {
		return CreateOrderResponse{}, errs.NewPersistenceError("could not save order")
	}

	message, err := outbox.NewMessage(
		OrderCreatedEventType,
		persisted.ID().UUID,
		orderCreatedPayload{
			OrderID:    persisted.ID().String(),
			TrackingID: persisted.TrackingID().String(),
			CustomerID: persisted.CustomerID().String(),
			Price:      persisted.Price().String(),
			CreatedAt:  event.CreatedAt(),
		},
		event.CreatedAt(),
	)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	metrics.OrdersCreatedTotal.Inc()

	return CreateOrderResponse{
		OrderID:    persisted.ID().UUID,
		TrackingID: persisted.TrackingID().UUID,
		Status:     persisted.Status(),
		Message:    "order created successfully",
	}, nil
}

// buildCandidateOrder maps the requested lines onto menu products and builds
// the un-initialized aggregate. A requested product the restaurant does not
// carry is a domain violation naming the product.
func buildCandidateOrder(
	cmd CreateOrderCommand,
	customerID customer.CustomerID,
	restaurantID restaurant.RestaurantID,
	snapshot *restaurant.Restaurant,
) (*order.Order, error) {
	menu := make(map[restaurant.ProductID]restaurant.Product)
	for _, product := range snapshot.Products() {
		menu[product.ID()] = product
	}

	items := make([]*order.OrderItem, 0, len(cmd.Items()))
	for _, requested := range cmd.Items() {
		product, ok := menu[requested.ProductID()]
		if !ok {
			return nil, errs.NewDomainViolationError(
				fmt.Sprintf("product %s is not available in restaurant menu", requested.ProductID()))
		}

		item, err := order.NewOrderItem(product, requested.Quantity(), requested.Price(), requested.SubTotal())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(customerID, restaurantID, cmd.DeliveryAddress(), cmd.Price(), items)
}
