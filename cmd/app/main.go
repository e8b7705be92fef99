package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"foodbridge/cmd"
	httpadapter "foodbridge/internal/adapters/in/http"
	"foodbridge/internal/adapters/out/rediscache"
	"foodbridge/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	cache := mustConnectCache(configs)
	defer cache.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, cache)

	jobManager := app.CreateJobManager(configs.CacheRefreshSchedule)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	// Warm the discovery cache so the first courier request skips the database.
	if err := jobManager.DiscoveryRefresh().Refresh(context.Background()); err != nil {
		app.Logger().Warn("Initial discovery cache warm-up failed", "error", err)
	}

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:            goDotEnvVariable("REDIS_ADDR"),
		DefaultLat:           goDotEnvVariable("DEFAULT_LAT"),
		DefaultLng:           goDotEnvVariable("DEFAULT_LNG"),
		CacheRefreshSchedule: goDotEnvVariable("CACHE_REFRESH_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustConnectCache(configs cmd.Config) *rediscache.RedisDiscoveryCache {
	cache, err := rediscache.NewRedisDiscoveryCache(configs.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	return cache
}

func mustDefaultCoordinates(configs cmd.Config) kernel.GeoPoint {
	lat, err := strconv.ParseFloat(configs.DefaultLat, 64)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_LAT: %v", err)
	}
	lng, err := strconv.ParseFloat(configs.DefaultLng, 64)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_LNG: %v", err)
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		log.Fatalf("Invalid default coordinates: %v", err)
	}
	return point
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreatePackageCommandHandler(),
		app.CreateAssignPackageCommandHandler(),
		app.CreateConfirmPickupCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateDeletePackageCommandHandler(),
		app.CreateGetAvailablePackagesQueryHandler(),
		app.CreateGetStorePackagesQueryHandler(),
		mustDefaultCoordinates(configs),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
