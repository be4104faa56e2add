package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

const productColumns = `id, name, min_temperature::text, max_temperature::text`

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p                models.Product
		minTemp, maxTemp string
	)
	if err := row.Scan(&p.ID, &p.Name, &minTemp, &maxTemp); err != nil {
		return p, err
	}
	var err error
	if p.MinTemperature, err = parseTemperature(minTemp); err != nil {
		return p, err
	}
	if p.MaxTemperature, err = parseTemperature(maxTemp); err != nil {
		return p, err
	}
	return p, nil
}

// CreateProduct inserts a product.
func (db *Database) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	out, err := scanProduct(db.Pool.QueryRow(ctx,
		`INSERT INTO products (name, min_temperature, max_temperature)
		 VALUES ($1, $2::numeric, $3::numeric) RETURNING `+productColumns,
		p.Name, p.MinTemperature.String(), p.MaxTemperature.String(),
	))
	if err != nil {
		return nil, translateError("create product", err)
	}
	return &out, nil
}

// GetProduct returns a product by id.
func (db *Database) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	out, err := scanProduct(db.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, translateError("get product", err)
	}
	return &out, nil
}

// ListProducts returns every product ordered by id.
func (db *Database) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, translateError("list products", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translateError("scan product", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
