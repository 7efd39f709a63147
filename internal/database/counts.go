package database

import (
	"context"
	"fmt"
)

// CountableTables lists every table the importer writes, in schema order.
// The web surface reports row counts for each.
var CountableTables = []string{
	"products",
	"addresses",
	"payment_methods",
	"orders",
	"order_items",
	"returns",
	"refunds",
	"digital_orders",
	"digital_order_items",
	"digital_order_payments",
	"digital_borrows",
	"cart_items",
}

// CountRows returns the row count of one importer table. The table name is
// checked against CountableTables before being interpolated.
func (q *Queries) CountRows(ctx context.Context, table string) (int64, error) {
	known := false
	for _, t := range CountableTables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var n int64
	err := q.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	return n, err
}
