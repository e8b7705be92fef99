package packagerepo_test

import (
	"context"
	"testing"
	"time"

	"foodbridge/internal/adapters/out/postgres/packagerepo"
	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PackageRepositoryIntegrationTestSuite provides integration tests for
// PackageRepository using PostgreSQL containers, with emphasis on the
// guarded status writes that implement exclusive claiming.
type PackageRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *packagerepo.GormPackageRepository
	tracker    *MockAggregateTracker
}

func (suite *PackageRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&packagerepo.PackageDTO{}))
}

func (suite *PackageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE packages").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = packagerepo.NewGormPackageRepository(suite.db, suite.tracker)
}

func (suite *PackageRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PackageRepositoryIntegrationTestSuite) newPendingPackage(storeID kernel.UUID) *foodpackage.Package {
	now := time.Now().UTC().Truncate(time.Microsecond)
	window, err := kernel.NewTimeWindow(now, now.Add(4*time.Hour))
	suite.Require().NoError(err)
	location, err := kernel.NewGeoPoint(42.3601, -71.0589)
	suite.Require().NoError(err)

	p, err := foodpackage.NewPackage(
		kernel.NewUUID(), storeID, "Corner Bakery", "12 Main St", &location,
		5.2, "bakery", "ask for manager", window, now,
	)
	suite.Require().NoError(err)
	return p
}

func (suite *PackageRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	original := suite.newPendingPackage(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(original.ID(), loaded.ID())
	suite.Equal(original.StoreName(), loaded.StoreName())
	suite.Equal(foodpackage.Pending, loaded.Status())
	suite.True(loaded.PickupCode().IsEqual(original.PickupCode()))
	suite.True(loaded.DeliveryCode().IsEqual(original.DeliveryCode()))
	suite.Require().NotNil(loaded.StoreLocation())
	suite.InDelta(42.3601, loaded.StoreLocation().Lat(), 0.0001)
	suite.Nil(loaded.Courier())
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetAllInStatus_OnlyMatching() {
	ctx := context.Background()
	pending := suite.newPendingPackage(kernel.NewUUID())
	claimed := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(claimed.Assign(kernel.NewUUID(), time.Now().UTC()))

	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.Require().NoError(suite.repository.Add(ctx, claimed))

	got, err := suite.repository.GetAllInStatus(ctx, foodpackage.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(pending.ID(), got[0].ID())
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetAllByStore() {
	ctx := context.Background()
	storeID := kernel.NewUUID()
	mine := suite.newPendingPackage(storeID)
	other := suite.newPendingPackage(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	got, err := suite.repository.GetAllByStore(ctx, storeID)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(mine.ID(), got[0].ID())
}

func (suite *PackageRepositoryIntegrationTestSuite) TestUpdateInStatus_PersistsTransition() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	courierID := kernel.NewUUID()
	suite.Require().NoError(p.Assign(courierID, time.Now().UTC().Truncate(time.Microsecond)))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, p, foodpackage.Pending))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(foodpackage.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.Courier())
	suite.True(loaded.Courier().IsEqual(courierID))
	suite.Require().NotNil(loaded.AssignedAt())
}

// Two couriers race for the same pending package: the second guarded write
// sees zero affected rows and reports a status conflict.
func (suite *PackageRepositoryIntegrationTestSuite) TestUpdateInStatus_SecondClaimConflicts() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	first, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.Assign(kernel.NewUUID(), now))
	suite.Require().NoError(second.Assign(kernel.NewUUID(), now))

	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, first, foodpackage.Pending))

	err = suite.repository.UpdateInStatus(ctx, second, foodpackage.Pending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrStatusConflict)

	// The winner's courier is the one persisted.
	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Courier().IsEqual(*first.Courier()))
}

func (suite *PackageRepositoryIntegrationTestSuite) TestUpdateInStatus_MissingRowNotFound() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(p.Assign(kernel.NewUUID(), time.Now().UTC()))

	err := suite.repository.UpdateInStatus(ctx, p, foodpackage.Pending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestDeleteInStatus_RemovesPending() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(suite.repository.DeleteInStatus(ctx, p.ID(), foodpackage.Pending))

	_, err := suite.repository.Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestDeleteInStatus_ClaimedConflicts() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(p.Assign(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, p))

	err := suite.repository.DeleteInStatus(ctx, p.ID(), foodpackage.Pending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrStatusConflict)

	// Still there.
	_, err = suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestFullLifecyclePersisted() {
	ctx := context.Background()
	p := suite.newPendingPackage(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	courierID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	suite.Require().NoError(p.Assign(courierID, now))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, p, foodpackage.Pending))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ConfirmPickup(courierID, loaded.PickupCode().Value(), now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, loaded, foodpackage.Assigned))

	loaded, err = suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ConfirmDelivery(loaded.DeliveryCode().Value(), now.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, loaded, foodpackage.PickedUp))

	final, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(foodpackage.Completed, final.Status())
	suite.NotNil(final.AssignedAt())
	suite.NotNil(final.PickedUpAt())
	suite.NotNil(final.CompletedAt())
}

func TestPackageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PackageRepositoryIntegrationTestSuite))
}
