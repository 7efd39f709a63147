package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertProduct = `
INSERT INTO products (asin, product_name, condition)
VALUES ($1, $2, $3)
ON CONFLICT (asin) DO UPDATE
SET product_name = COALESCE(EXCLUDED.product_name, products.product_name),
    condition    = COALESCE(EXCLUDED.condition, products.condition),
    updated_at   = CURRENT_TIMESTAMP
RETURNING id
`

// UpsertProductParams holds the natural key and mutable fields of a product.
type UpsertProductParams struct {
	ASIN        string
	ProductName pgtype.Text
	Condition   pgtype.Text
}

// UpsertProduct finds or creates the product row keyed by ASIN and returns
// its surrogate id. A re-import with a changed name overwrites the name.
func (q *Queries) UpsertProduct(ctx context.Context, arg UpsertProductParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertProduct, arg.ASIN, arg.ProductName, arg.Condition).Scan(&id)
	return id, err
}
