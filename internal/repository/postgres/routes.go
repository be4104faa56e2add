package postgres

import (
	"context"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

const routeColumns = `id, from_location_id, to_location_id, capacity, min_shipment`

// CreateRoute inserts a route.
func (db *Database) CreateRoute(ctx context.Context, r models.Route) (*models.Route, error) {
	var out models.Route
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO routes (from_location_id, to_location_id, capacity, min_shipment)
		 VALUES ($1, $2, $3, $4) RETURNING `+routeColumns,
		r.FromLocationID, r.ToLocationID, r.Capacity, r.MinShipment,
	).Scan(&out.ID, &out.FromLocationID, &out.ToLocationID, &out.Capacity, &out.MinShipment)
	if err != nil {
		return nil, translateError("create route", err)
	}
	return &out, nil
}

// ListRoutes returns every route ordered by id.
func (db *Database) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return db.queryRoutes(ctx, "list routes", `SELECT `+routeColumns+` FROM routes ORDER BY id`)
}

// RoutesByDestination returns the routes delivering into a location.
func (db *Database) RoutesByDestination(ctx context.Context, locationID int64) ([]models.Route, error) {
	return db.queryRoutes(ctx, "routes by destination",
		`SELECT `+routeColumns+` FROM routes WHERE to_location_id = $1 ORDER BY id`, locationID)
}

func (db *Database) queryRoutes(ctx context.Context, op, query string, args ...any) ([]models.Route, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	routes := make([]models.Route, 0)
	for rows.Next() {
		var r models.Route
		if err := rows.Scan(&r.ID, &r.FromLocationID, &r.ToLocationID, &r.Capacity, &r.MinShipment); err != nil {
			return nil, translateError(op, err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}
