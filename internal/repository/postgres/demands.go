package postgres

import (
	"context"
	"time"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

const demandColumns = `id, location_id, product_id, date, min_quantity, max_quantity`

// CreateDemand inserts a demand.
func (db *Database) CreateDemand(ctx context.Context, d models.Demand) (*models.Demand, error) {
	var out models.Demand
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO demands (location_id, product_id, date, min_quantity, max_quantity)
		 VALUES ($1, $2, $3::date, $4, $5) RETURNING `+demandColumns,
		d.LocationID, d.ProductID, models.FormatDate(d.Date), d.MinQuantity, d.MaxQuantity,
	).Scan(&out.ID, &out.LocationID, &out.ProductID, &out.Date, &out.MinQuantity, &out.MaxQuantity)
	if err != nil {
		return nil, translateError("create demand", err)
	}
	return &out, nil
}

// ListDemands returns every demand ordered by id.
func (db *Database) ListDemands(ctx context.Context) ([]models.Demand, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+demandColumns+` FROM demands ORDER BY id`)
	if err != nil {
		return nil, translateError("list demands", err)
	}
	defer rows.Close()

	demands := make([]models.Demand, 0)
	for rows.Next() {
		var d models.Demand
		if err := rows.Scan(&d.ID, &d.LocationID, &d.ProductID, &d.Date, &d.MinQuantity, &d.MaxQuantity); err != nil {
			return nil, translateError("scan demand", err)
		}
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

// DemandsByDate returns the demands of a date joined with their product band.
func (db *Database) DemandsByDate(ctx context.Context, date time.Time) ([]models.DemandRequirement, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT d.id, d.location_id, p.id, p.name, p.min_temperature::text, p.max_temperature::text
		FROM demands d
		JOIN products p ON d.product_id = p.id
		WHERE d.date = $1::date
		ORDER BY d.id`, models.FormatDate(date))
	if err != nil {
		return nil, translateError("demands by date", err)
	}
	defer rows.Close()

	out := make([]models.DemandRequirement, 0)
	for rows.Next() {
		var (
			r                models.DemandRequirement
			minTemp, maxTemp string
		)
		if err := rows.Scan(&r.DemandID, &r.LocationID, &r.ProductID, &r.ProductName, &minTemp, &maxTemp); err != nil {
			return nil, translateError("scan demand requirement", err)
		}
		if r.MinTemperature, err = parseTemperature(minTemp); err != nil {
			return nil, err
		}
		if r.MaxTemperature, err = parseTemperature(maxTemp); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
