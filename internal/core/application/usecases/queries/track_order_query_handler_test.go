package queries_test

import (
	"context"
	"testing"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgres_testcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracking dependency in read tests
// where aggregate tracking is irrelevant.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type TrackOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres_testcontainer.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
	handler   queries.TrackOrderQueryHandler
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres_testcontainer.Run(ctx,
		"postgres:15-alpine",
		postgres_testcontainer.WithDatabase("testdb"),
		postgres_testcontainer.WithUsername("testuser"),
		postgres_testcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.handler = queries.NewTrackOrderQueryHandler(db)
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *TrackOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_PendingOrder() {
	ctx := context.Background()
	testOrder := suite.seedOrder(ctx)

	query, err := queries.NewTrackOrderQuery(testOrder.TrackingID().UUID)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(response.TrackingID.IsEqual(testOrder.TrackingID().UUID))
	suite.Equal("Pending", response.Status)
	suite.Equal("25.00", response.Price)
	suite.Empty(response.FailureMessages)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_CancelledOrderWithFailureMessages() {
	ctx := context.Background()
	testOrder := suite.seedOrder(ctx)

	suite.Require().NoError(testOrder.Pay())
	suite.Require().NoError(testOrder.InitCancel([]string{"payment declined"}))
	suite.Require().NoError(testOrder.Cancel([]string{"refund issued"}))
	suite.Require().NoError(suite.repo.Update(ctx, testOrder))

	query, err := queries.NewTrackOrderQuery(testOrder.TrackingID().UUID)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("Cancelled", response.Status)
	suite.Equal([]string{"payment declined", "refund issued"}, response.FailureMessages)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_UnknownTrackingID() {
	ctx := context.Background()
	suite.seedOrder(ctx)

	query, err := queries.NewTrackOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	ctx := context.Background()

	var query queries.TrackOrderQuery
	_, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
}

func (suite *TrackOrderQueryHandlerTestSuite) seedOrder(ctx context.Context) *order.Order {
	product, err := restaurant.NewProduct(restaurant.NewProductID(), "Margherita", suite.money("12.50"))
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(product, 2, suite.money("12.50"), suite.money("25.00"))
	suite.Require().NoError(err)

	address, err := order.NewStreetAddress("1 Main St", "10001", "New York")
	suite.Require().NoError(err)

	candidate, err := order.NewOrder(
		customer.NewCustomerID(),
		restaurant.NewRestaurantID(),
		address,
		suite.money("25.00"),
		[]*order.OrderItem{item},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(candidate.Initialize())

	persisted, err := suite.repo.Add(ctx, candidate)
	suite.Require().NoError(err)
	return persisted
}

func (suite *TrackOrderQueryHandlerTestSuite) money(s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func TestTrackOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackOrderQueryHandlerTestSuite))
}
