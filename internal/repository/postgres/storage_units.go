package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

const storageUnitColumns = `id, location_id, min_temperature::text, max_temperature::text, capacity`

func scanStorageUnit(row pgx.Row) (models.StorageUnit, error) {
	var (
		u                models.StorageUnit
		minTemp, maxTemp string
	)
	if err := row.Scan(&u.ID, &u.LocationID, &minTemp, &maxTemp, &u.Capacity); err != nil {
		return u, err
	}
	var err error
	if u.MinTemperature, err = parseTemperature(minTemp); err != nil {
		return u, err
	}
	if u.MaxTemperature, err = parseTemperature(maxTemp); err != nil {
		return u, err
	}
	return u, nil
}

// CreateStorageUnit inserts a storage unit.
func (db *Database) CreateStorageUnit(ctx context.Context, u models.StorageUnit) (*models.StorageUnit, error) {
	out, err := scanStorageUnit(db.Pool.QueryRow(ctx,
		`INSERT INTO storage_units (location_id, min_temperature, max_temperature, capacity)
		 VALUES ($1, $2::numeric, $3::numeric, $4) RETURNING `+storageUnitColumns,
		u.LocationID, u.MinTemperature.String(), u.MaxTemperature.String(), u.Capacity,
	))
	if err != nil {
		return nil, translateError("create storage unit", err)
	}
	return &out, nil
}

// ListStorageUnits returns every storage unit ordered by id.
func (db *Database) ListStorageUnits(ctx context.Context) ([]models.StorageUnit, error) {
	return db.queryStorageUnits(ctx, "list storage units",
		`SELECT `+storageUnitColumns+` FROM storage_units ORDER BY id`)
}

// StorageUnitsByLocation returns the storage units attached to a location.
func (db *Database) StorageUnitsByLocation(ctx context.Context, locationID int64) ([]models.StorageUnit, error) {
	return db.queryStorageUnits(ctx, "storage units by location",
		`SELECT `+storageUnitColumns+` FROM storage_units WHERE location_id = $1 ORDER BY id`, locationID)
}

func (db *Database) queryStorageUnits(ctx context.Context, op, query string, args ...any) ([]models.StorageUnit, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	units := make([]models.StorageUnit, 0)
	for rows.Next() {
		u, err := scanStorageUnit(rows)
		if err != nil {
			return nil, translateError(op, err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
