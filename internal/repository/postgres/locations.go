package postgres

import (
	"context"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// CreateLocation inserts a location.
func (db *Database) CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	var out models.Location
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO locations (name, type, city) VALUES ($1, $2, $3) RETURNING id, name, type, city`,
		loc.Name, string(loc.Type), loc.City,
	).Scan(&out.ID, &out.Name, &out.Type, &out.City)
	if err != nil {
		return nil, translateError("create location", err)
	}
	return &out, nil
}

// GetLocation returns a location by id.
func (db *Database) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	var out models.Location
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, type, city FROM locations WHERE id = $1`, id,
	).Scan(&out.ID, &out.Name, &out.Type, &out.City)
	if err != nil {
		return nil, translateError("get location", err)
	}
	return &out, nil
}

// ListLocations returns every location ordered by id.
func (db *Database) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, type, city FROM locations ORDER BY id`)
	if err != nil {
		return nil, translateError("list locations", err)
	}
	defer rows.Close()

	locations := make([]models.Location, 0)
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.City); err != nil {
			return nil, translateError("scan location", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
