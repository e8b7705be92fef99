package commands_test

import (
	"context"
	"time"

	"foodbridge/internal/core/application/usecases/commands"
	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared mocks for command handler tests. Every handler works against the
// same PackageUoW contract, so one mock set serves all of them.

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *foodpackage.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*foodpackage.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*foodpackage.Package), args.Error(1)
}

func (m *MockPackageRepository) GetAllInStatus(
	ctx context.Context, status foodpackage.Status,
) ([]*foodpackage.Package, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*foodpackage.Package), args.Error(1)
}

func (m *MockPackageRepository) GetAllByStore(
	ctx context.Context, storeID kernel.UUID,
) ([]*foodpackage.Package, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*foodpackage.Package), args.Error(1)
}

func (m *MockPackageRepository) UpdateInStatus(
	ctx context.Context, p *foodpackage.Package, expected foodpackage.Status,
) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

func (m *MockPackageRepository) DeleteInStatus(
	ctx context.Context, id kernel.UUID, expected foodpackage.Status,
) error {
	args := m.Called(ctx, id, expected)
	return args.Error(0)
}

type MockPackageUoW struct{ mock.Mock }

func (m *MockPackageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

type MockDiscoveryCache struct{ mock.Mock }

func (m *MockDiscoveryCache) GetPending(ctx context.Context) ([]*foodpackage.Package, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*foodpackage.Package), args.Bool(1), args.Error(2)
}

func (m *MockDiscoveryCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiscoveryCache) SetPending(
	ctx context.Context, packages []*foodpackage.Package, generation int64,
) error {
	args := m.Called(ctx, packages, generation)
	return args.Error(0)
}

func (m *MockDiscoveryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mustPendingPackage builds a pending aggregate with a one-hour pickup window.
func mustPendingPackage(storeID kernel.UUID) *foodpackage.Package {
	now := time.Now().UTC()
	window, err := kernel.NewTimeWindow(now, now.Add(time.Hour))
	if err != nil {
		panic(err)
	}
	location, err := kernel.NewGeoPoint(42.3601, -71.0589)
	if err != nil {
		panic(err)
	}
	p, err := foodpackage.NewPackage(
		kernel.NewUUID(), storeID, "Corner Bakery", "12 Main St", &location,
		5.2, "bakery", "ask for manager", window, now,
	)
	if err != nil {
		panic(err)
	}
	return p
}
