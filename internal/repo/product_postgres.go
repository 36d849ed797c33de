package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

// PostgresProductSource reads the catalog from the products table.
type PostgresProductSource struct {
	db *sql.DB
}

func NewPostgresProductSource(db *sql.DB) *PostgresProductSource {
	return &PostgresProductSource{db: db}
}

// LoadProducts implements ProductSource. Rows come back in catalog position order.
func (r *PostgresProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	const op = "PostgresProductSource.LoadProducts"

	query := `SELECT id, name, price, category, brand, description, image, in_stock, rating, reviews, specs
		FROM products ORDER BY position`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var specs []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Brand, &p.Description,
			&p.Image, &p.InStock, &p.Rating, &p.Reviews, &specs); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(specs) > 0 {
			if err := json.Unmarshal(specs, &p.Specs); err != nil {
				return nil, fmt.Errorf("%s: product %s specs: %w", op, p.ID, err)
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}
