package commands_test

import (
	"errors"
	"testing"

	"foodbridge/internal/core/application/usecases/commands"
	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignPackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pending := mustPendingPackage(kernel.NewUUID())
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignPackageCommand(pending.ID(), courierID)
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockDiscoveryCache)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		repo.On("UpdateInStatus", mock.Anything, pending, foodpackage.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPackageCommandHandler(factory, cache)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, foodpackage.Assigned, pending.Status())
	require.NotNil(t, pending.Courier())
	require.True(t, pending.Courier().IsEqual(courierID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAssignPackageCommandHandler_Handle_PackageNotFound(t *testing.T) {
	ctx := t.Context()
	packageID := kernel.NewUUID()
	cmd, err := commands.NewAssignPackageCommand(packageID, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockDiscoveryCache)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, packageID).
			Return(nil, errs.NewObjectNotFoundError("packageID", packageID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPackageCommandHandler(factory, cache)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	cache.AssertExpectations(t)
}

func TestAssignPackageCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	claimed := mustPendingPackage(kernel.NewUUID())
	require.NoError(t, claimed.Assign(kernel.NewUUID(), claimed.CreatedAt()))

	cmd, err := commands.NewAssignPackageCommand(claimed.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockDiscoveryCache)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, claimed.ID()).Return(claimed, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPackageCommandHandler(factory, cache)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStatusConflict)
	cache.AssertExpectations(t)
}

// A race lost at the storage layer surfaces as a status conflict even though
// the in-memory transition succeeded.
func TestAssignPackageCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	pending := mustPendingPackage(kernel.NewUUID())
	cmd, err := commands.NewAssignPackageCommand(pending.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockDiscoveryCache)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		repo.On("UpdateInStatus", mock.Anything, pending, foodpackage.Pending).
			Return(errs.NewStatusConflictError("assign", foodpackage.Pending.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPackageCommandHandler(factory, cache)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStatusConflict)
	cache.AssertExpectations(t)
}

// A claim whose cache invalidation fails must not be acknowledged: listings
// could still offer the package, so the caller gets an error and retries.
func TestAssignPackageCommandHandler_Handle_InvalidationFailureIsNotAcknowledged(t *testing.T) {
	ctx := t.Context()
	pending := mustPendingPackage(kernel.NewUUID())
	cmd, err := commands.NewAssignPackageCommand(pending.ID(), kernel.NewUUID())
	require.NoError(t, err)

	cacheDown := errors.New("redis down")
	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockDiscoveryCache)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		repo.On("UpdateInStatus", mock.Anything, pending, foodpackage.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx).Return(cacheDown).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPackageCommandHandler(factory, cache)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, cacheDown)
	cache.AssertExpectations(t)
}
