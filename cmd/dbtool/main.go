// Command dbtool creates the packages schema. Run it once against a fresh
// database before starting the service.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS packages (
    id            UUID PRIMARY KEY,
    store_id      UUID NOT NULL,
    store_name    TEXT NOT NULL,
    store_address TEXT NOT NULL,
    store_lat     DOUBLE PRECISION,
    store_lng     DOUBLE PRECISION,
    weight_lbs    DOUBLE PRECISION NOT NULL,
    food_type     TEXT NOT NULL,
    instructions  TEXT NOT NULL DEFAULT '',
    window_start  TIMESTAMPTZ NOT NULL,
    window_end    TIMESTAMPTZ NOT NULL,
    pickup_code   TEXT NOT NULL,
    delivery_code TEXT NOT NULL,
    status        INTEGER NOT NULL,
    courier_id    UUID,
    created_at    TIMESTAMPTZ NOT NULL,
    assigned_at   TIMESTAMPTZ,
    picked_up_at  TIMESTAMPTZ,
    completed_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_packages_store_id ON packages (store_id);
CREATE INDEX IF NOT EXISTS idx_packages_status ON packages (status);
CREATE INDEX IF NOT EXISTS idx_packages_courier_id ON packages (courier_id);
`

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), os.Getenv("DB_SSLMODE"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Info("Schema is up to date")
}
