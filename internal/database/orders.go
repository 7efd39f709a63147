package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertOrder = `
INSERT INTO orders (
    order_id, website, order_date, currency, order_status,
    total_owed, shipping_charge, total_discounts,
    shipping_address_id, billing_address_id, payment_method_id
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (order_id) DO UPDATE
SET order_status        = EXCLUDED.order_status,
    total_owed          = EXCLUDED.total_owed,
    shipping_charge     = EXCLUDED.shipping_charge,
    total_discounts     = EXCLUDED.total_discounts,
    shipping_address_id = EXCLUDED.shipping_address_id,
    billing_address_id  = EXCLUDED.billing_address_id,
    payment_method_id   = EXCLUDED.payment_method_id,
    updated_at          = CURRENT_TIMESTAMP
RETURNING id
`

// UpsertOrderParams maps one retail order row. OrderID is the natural key;
// the address and payment ids must already be resolved.
type UpsertOrderParams struct {
	OrderID           string
	Website           pgtype.Text
	OrderDate         pgtype.Timestamptz
	Currency          pgtype.Text
	OrderStatus       string
	TotalOwed         pgtype.Numeric
	ShippingCharge    pgtype.Numeric
	TotalDiscounts    pgtype.Numeric
	ShippingAddressID int64
	BillingAddressID  int64
	PaymentMethodID   int64
}

// UpsertOrder inserts the order or updates its mutable fields, returning the
// surrogate id.
func (q *Queries) UpsertOrder(ctx context.Context, arg UpsertOrderParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertOrder,
		arg.OrderID, arg.Website, arg.OrderDate, arg.Currency, arg.OrderStatus,
		arg.TotalOwed, arg.ShippingCharge, arg.TotalDiscounts,
		arg.ShippingAddressID, arg.BillingAddressID, arg.PaymentMethodID,
	).Scan(&id)
	return id, err
}
