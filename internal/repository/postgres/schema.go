package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type VARCHAR(32) NOT NULL,
		city TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		min_temperature NUMERIC(6,2) NOT NULL,
		max_temperature NUMERIC(6,2) NOT NULL,
		CHECK (min_temperature <= max_temperature)
	)`,
	`CREATE TABLE IF NOT EXISTS storage_units (
		id SERIAL PRIMARY KEY,
		location_id INTEGER NOT NULL REFERENCES locations(id),
		min_temperature NUMERIC(6,2) NOT NULL,
		max_temperature NUMERIC(6,2) NOT NULL,
		capacity BIGINT NOT NULL CHECK (capacity >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id SERIAL PRIMARY KEY,
		from_location_id INTEGER NOT NULL REFERENCES locations(id),
		to_location_id INTEGER NOT NULL REFERENCES locations(id),
		capacity BIGINT NOT NULL CHECK (capacity >= 0),
		min_shipment BIGINT NOT NULL DEFAULT 0 CHECK (min_shipment >= 0 AND min_shipment <= capacity)
	)`,
	`CREATE TABLE IF NOT EXISTS demands (
		id SERIAL PRIMARY KEY,
		location_id INTEGER NOT NULL REFERENCES locations(id),
		product_id INTEGER NOT NULL REFERENCES products(id),
		date DATE NOT NULL,
		min_quantity BIGINT NOT NULL CHECK (min_quantity >= 0),
		max_quantity BIGINT NOT NULL CHECK (max_quantity >= min_quantity)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_demands_date ON demands(date)`,
	`CREATE INDEX IF NOT EXISTS idx_storage_units_location ON storage_units(location_id)`,
	`CREATE INDEX IF NOT EXISTS idx_routes_to_location ON routes(to_location_id)`,
}

// InitSchema creates the entity tables when they are missing.
func (db *Database) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	db.logger.Debug("database schema verified")
	return nil
}
