package commands_test

import (
	"context"
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
	"ordering/internal/pkg/outbox"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if rf, ok := args.Get(0).(func(context.Context, *order.Order) (*order.Order, error)); ok {
		return rf(ctx, o)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *MockOrderRepository) Get(_ context.Context, _ order.OrderID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetByTrackingID(_ context.Context, _ order.TrackingID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id customer.CustomerID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(
	ctx context.Context, id restaurant.RestaurantID, productIDs []restaurant.ProductID,
) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockOutboxRepository) FetchPending(_ context.Context, _ int) ([]*outbox.Message, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOutboxRepository) MarkSent(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}

type MockCreateOrderUoW struct{ mock.Mock }

func (m *MockCreateOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCreateOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCreateOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCreateOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockCreateOrderUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}
func (m *MockCreateOrderUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}
func (m *MockCreateOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

// createOrderWorld wires a consistent customer, restaurant, and command:
// 2 x 12.50 Margherita, declared total 25.00.
type createOrderWorld struct {
	cmd        commands.CreateOrderCommand
	customer   *customer.Customer
	restaurant *restaurant.Restaurant
}

func newCreateOrderWorld(t *testing.T, restaurantActive bool) createOrderWorld {
	t.Helper()

	customerID := customer.NewCustomerID()
	c, err := customer.NewCustomer(customerID)
	require.NoError(t, err)

	product, err := restaurant.NewProduct(restaurant.NewProductID(), "Margherita", mustMoney(t, "12.50"))
	require.NoError(t, err)
	snapshot, err := restaurant.NewRestaurant(
		restaurant.NewRestaurantID(), []restaurant.Product{product}, restaurantActive)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		customerID.UUID, snapshot.ID().UUID, mustAddress(t), mustMoney(t, "25.00"),
		[]commands.CreateOrderItem{mustItem(t, product.ID(), 2, "12.50", "25.00")})
	require.NoError(t, err)

	return createOrderWorld{cmd: cmd, customer: c, restaurant: snapshot}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	restaurantRepo := new(MockRestaurantRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.AnythingOfType("customer.CustomerID")).
			Return(world.customer, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, mock.AnythingOfType("restaurant.RestaurantID"), mock.Anything).
			Return(world.restaurant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(func(_ context.Context, o *order.Order) (*order.Order, error) { return o, nil }).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	createdBefore := testutil.ToFloat64(metrics.OrdersCreatedTotal)

	h := commands.NewCreateOrderCommandHandler(factory)
	response, err := h.Handle(ctx, world.cmd)

	require.NoError(t, err)
	assert.NoError(t, response.OrderID.Validate())
	assert.NoError(t, response.TrackingID.Validate())
	assert.Equal(t, order.Pending, response.Status)
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(metrics.OrdersCreatedTotal),
		"a committed order must be counted")

	queued := outboxRepo.Calls[0].Arguments.Get(1).(*outbox.Message)
	assert.Equal(t, commands.OrderCreatedEventType, queued.EventType())
	assert.True(t, queued.AggregateID().IsEqual(response.OrderID))
	assert.False(t, queued.IsSent())

	orderRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockCreateOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_CustomerNotFound(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("customerID", world.cmd.CustomerID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	// An unknown customer must not cost a restaurant lookup or any write.
	uow.AssertNotCalled(t, "RestaurantRepository")
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "OutboxRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InactiveRestaurant(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, false)

	customerRepo := new(MockCustomerRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.Anything).Return(world.customer, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(world.restaurant, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDomainViolation)
	// A rejected order must leave no trace: nothing persisted, nothing queued.
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "OutboxRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PersistenceFailure(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.Anything).Return(world.customer, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(world.restaurant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).
			Return(nil, errs.NewPersistenceErrorWithCause("add order", errors.New("connection reset"))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistenceFailed)
	// A failed save must not queue an event.
	uow.AssertNotCalled(t, "OutboxRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NilPersistedOrder(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.Anything).Return(world.customer, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(world.restaurant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistenceFailed)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	restaurantRepo := new(MockRestaurantRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", mock.Anything, mock.Anything).Return(world.customer, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(world.restaurant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).
			Return(func(_ context.Context, o *order.Order) (*order.Order, error) { return o, nil }).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	createdBefore := testutil.ToFloat64(metrics.OrdersCreatedTotal)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
	assert.Equal(t, createdBefore, testutil.ToFloat64(metrics.OrdersCreatedTotal),
		"a failed commit must not be counted")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	world := newCreateOrderWorld(t, true)

	uow := new(MockCreateOrderUoW)
	factory := new(MockCreateOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, world.cmd)

	require.Error(t, err)
}
