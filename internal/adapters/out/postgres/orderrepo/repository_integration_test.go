package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"tawsila/internal/adapters/out/postgres/orderrepo"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers, with particular focus
// on the guarded transition writes.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	coords, err := kernel.NewCoordinates(33.5731, -7.5898)
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Leila Haddad", "+212600000001", "12 Rue des Fleurs", coords)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), customer, "documents")
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetByNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(order.Received, loaded.Status())
	suite.Equal("Leila Haddad", loaded.Customer().Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_NotFound() {
	_, err := suite.repository.GetByNumber(context.Background(), order.GenerateNumber())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignIfReceived_ClaimsOnce() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first := kernel.NewUUID()
	second := kernel.NewUUID()

	assigned, err := suite.repository.AssignIfReceived(ctx, testOrder.Number(), first)
	suite.Require().NoError(err)
	suite.Equal(order.InTransit, assigned.Status())
	suite.Require().NotNil(assigned.AssignedDriver())
	suite.True(assigned.AssignedDriver().IsEqual(first))

	_, err = suite.repository.AssignIfReceived(ctx, testOrder.Number(), second)
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)

	// the loser must not have overwritten the winner
	loaded, err := suite.repository.GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.True(loaded.AssignedDriver().IsEqual(first))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignIfReceived_UnknownOrder() {
	_, err := suite.repository.AssignIfReceived(context.Background(), order.GenerateNumber(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCancelIfActive() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	cancelledAt := time.Now().UTC().Truncate(time.Millisecond)
	cancelled, err := suite.repository.CancelIfActive(ctx, testOrder.Number(), cancelledAt)
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, cancelled.Status())
	suite.Require().NotNil(cancelled.CancelledAt())

	_, err = suite.repository.CancelIfActive(ctx, testOrder.Number(), time.Now())
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeliverIfInTransit() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// not in transit yet
	_, err := suite.repository.DeliverIfInTransit(ctx, testOrder.Number(), time.Now())
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)

	driverID := kernel.NewUUID()
	_, err = suite.repository.AssignIfReceived(ctx, testOrder.Number(), driverID)
	suite.Require().NoError(err)

	coords, err := kernel.NewCoordinates(33.58, -7.60)
	suite.Require().NoError(err)
	suite.Require().NoError(
		suite.repository.SetTrackedLocation(ctx, testOrder.Number(), coords, time.Now()))

	delivered, err := suite.repository.DeliverIfInTransit(ctx, testOrder.Number(), time.Now())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, delivered.Status())
	suite.Require().NotNil(delivered.DeliveredAt())
	suite.Nil(delivered.TrackedLocation(), "delivery clears the tracked location")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRateIfDelivered_OnlyOnce() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// not delivered yet
	_, err := suite.repository.RateIfDelivered(ctx, testOrder.Number(), 5)
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)

	_, err = suite.repository.AssignIfReceived(ctx, testOrder.Number(), kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = suite.repository.DeliverIfInTransit(ctx, testOrder.Number(), time.Now())
	suite.Require().NoError(err)

	rated, err := suite.repository.RateIfDelivered(ctx, testOrder.Number(), 4)
	suite.Require().NoError(err)
	suite.Require().NotNil(rated.Rating())
	suite.Equal(4, *rated.Rating())

	_, err = suite.repository.RateIfDelivered(ctx, testOrder.Number(), 1)
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHasActiveForPhone() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	active, err := suite.repository.HasActiveForPhone(ctx, "+212600000001")
	suite.Require().NoError(err)
	suite.True(active)

	active, err = suite.repository.HasActiveForPhone(ctx, "+212699999999")
	suite.Require().NoError(err)
	suite.False(active)

	_, err = suite.repository.CancelIfActive(ctx, testOrder.Number(), time.Now())
	suite.Require().NoError(err)

	active, err = suite.repository.HasActiveForPhone(ctx, "+212600000001")
	suite.Require().NoError(err)
	suite.False(active, "terminal orders no longer block new submissions")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedCancellation() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Cancel(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Received, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.Equal(order.Received, loaded.Status())
	suite.Nil(loaded.CancelledAt(), "leaving cancelled must clear the timestamp")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReceived_OldestFirst() {
	ctx := context.Background()
	first := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	coords, err := kernel.NewCoordinates(34.0209, -6.8416)
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Omar Benali", "+212622222222", "", coords)
	suite.Require().NoError(err)
	second, err := order.NewOrder(kernel.NewUUID(), customer, "food")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, second))

	received, err := suite.repository.GetAllReceived(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(received, 2)
	suite.Equal(first.Number(), received[0].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.Delete(ctx, testOrder.ID()))

	err := suite.repository.Delete(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
