package postgres

import (
	"context"
	"time"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// SumMaxQuantityByLocation totals demand max quantities per location for a
// date, ordered by location id.
func (db *Database) SumMaxQuantityByLocation(ctx context.Context, date time.Time) ([]models.LocationTotal, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT location_id, SUM(max_quantity)::bigint AS total_demand
		FROM demands
		WHERE date = $1::date
		GROUP BY location_id
		ORDER BY location_id`, models.FormatDate(date))
	if err != nil {
		return nil, translateError("sum max quantity by location", err)
	}
	defer rows.Close()

	totals := make([]models.LocationTotal, 0)
	for rows.Next() {
		var t models.LocationTotal
		if err := rows.Scan(&t.LocationID, &t.Total); err != nil {
			return nil, translateError("scan location total", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// SumCapacityByLocation totals the storage capacity of a location.
func (db *Database) SumCapacityByLocation(ctx context.Context, locationID int64) (int64, error) {
	var total int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(capacity), 0)::bigint FROM storage_units WHERE location_id = $1`, locationID,
	).Scan(&total)
	if err != nil {
		return 0, translateError("sum capacity by location", err)
	}
	return total, nil
}
