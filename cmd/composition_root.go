package cmd

import (
	"log/slog"
	"os"

	"foodbridge/internal/adapters/out/postgres"
	"foodbridge/internal/adapters/out/postgres/packagerepo"
	"foodbridge/internal/adapters/out/rediscache"
	"foodbridge/internal/core/application/usecases/commands"
	"foodbridge/internal/core/application/usecases/queries"
	"foodbridge/internal/core/ports"
	"foodbridge/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      *rediscache.RedisDiscoveryCache
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, cache *rediscache.RedisDiscoveryCache) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	return commands.NewCreatePackageCommandHandler(c.packageUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateAssignPackageCommandHandler() commands.AssignPackageCommandHandler {
	return commands.NewAssignPackageCommandHandler(c.packageUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.packageUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.packageUoWFactory())
}

func (c *CompositionRoot) CreateDeletePackageCommandHandler() commands.DeletePackageCommandHandler {
	return commands.NewDeletePackageCommandHandler(c.packageUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateGetAvailablePackagesQueryHandler() queries.GetAvailablePackagesQueryHandler {
	return queries.NewGetAvailablePackagesQueryHandler(c.readOnlyPackageRepository(), c.cache)
}

func (c *CompositionRoot) CreateGetStorePackagesQueryHandler() queries.GetStorePackagesQueryHandler {
	return queries.NewGetStorePackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(refreshSchedule string) *jobs.JobManager {
	return jobs.NewJobManager(c.readOnlyPackageRepository(), c.cache, refreshSchedule, c.logger)
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) packageUoWFactory() commands.PackageUoWFactory {
	return FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
}

// readOnlyPackageRepository binds a repository to the base connection for
// query paths that never run inside a unit of work.
func (c *CompositionRoot) readOnlyPackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(c.gormDB, packagerepo.NoopTracker{})
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}
