package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"tawsila/internal/adapters/out/postgres/driverrepo"
	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"
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

// DriverRepositoryIntegrationTestSuite provides integration tests for
// GormDriverRepository using PostgreSQL containers.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = driverrepo.NewGormDriverRepository(suite.db, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) createTestDriver(username string) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Karim Benjelloun", username, "+212633333333")
	suite.Require().NoError(err)
	return d
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	testDriver := suite.createTestDriver("karim")

	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	loaded, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testDriver))
	suite.True(loaded.IsAvailable())
	suite.Nil(loaded.Coords())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAllAvailable_RequiresPosition() {
	ctx := context.Background()

	located := suite.createTestDriver("located")
	coords, err := kernel.NewCoordinates(33.5731, -7.5898)
	suite.Require().NoError(err)
	suite.Require().NoError(located.MoveTo(coords))
	suite.Require().NoError(suite.repository.Add(ctx, located))

	unlocated := suite.createTestDriver("unlocated")
	suite.Require().NoError(suite.repository.Add(ctx, unlocated))

	busy := suite.createTestDriver("busy")
	suite.Require().NoError(busy.MoveTo(coords))
	busy.SetAvailability(false)
	suite.Require().NoError(suite.repository.Add(ctx, busy))

	available, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.True(available[0].IsEqual(located))
}

func (suite *DriverRepositoryIntegrationTestSuite) TestSetAvailability() {
	ctx := context.Background()
	testDriver := suite.createTestDriver("karim")
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	suite.Require().NoError(suite.repository.SetAvailability(ctx, testDriver.ID(), false))

	loaded, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsAvailable())

	err = suite.repository.SetAvailability(ctx, kernel.NewUUID(), true)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdateCoords() {
	ctx := context.Background()
	testDriver := suite.createTestDriver("karim")
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	coords, err := kernel.NewCoordinates(33.9716, -6.8498)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateCoords(ctx, testDriver.ID(), coords))

	loaded, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Coords())
	suite.True(loaded.Coords().IsEqual(coords))

	// unknown driver is a no-op
	suite.Require().NoError(suite.repository.UpdateCoords(ctx, kernel.NewUUID(), coords))
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
