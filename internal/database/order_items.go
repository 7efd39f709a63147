package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertOrderItem = `
INSERT INTO order_items (
    order_id, product_id, quantity, unit_price, unit_price_tax,
    shipment_status, ship_date, carrier_name, tracking_number
)
SELECT o.order_id, p.id, $3, $4, $5, $6, $7, $8, $9
FROM orders o, products p
WHERE o.order_id = $1 AND p.asin = $2
ON CONFLICT (order_id, product_id) DO UPDATE
SET quantity        = EXCLUDED.quantity,
    unit_price      = EXCLUDED.unit_price,
    unit_price_tax  = EXCLUDED.unit_price_tax,
    shipment_status = EXCLUDED.shipment_status,
    ship_date       = EXCLUDED.ship_date,
    carrier_name    = EXCLUDED.carrier_name,
    tracking_number = EXCLUDED.tracking_number
`

// UpsertOrderItemParams links an order by natural order id and a product by
// ASIN. Quantity must already be validated as > 0.
type UpsertOrderItemParams struct {
	OrderID        string
	ASIN           string
	Quantity       int32
	UnitPrice      pgtype.Numeric
	UnitPriceTax   pgtype.Numeric
	ShipmentStatus string
	ShipDate       pgtype.Timestamptz
	CarrierName    pgtype.Text
	TrackingNumber pgtype.Text
}

// UpsertOrderItem inserts or updates the order item. Returns ErrMissingParent
// when the referenced order or product does not exist.
func (q *Queries) UpsertOrderItem(ctx context.Context, arg UpsertOrderItemParams) error {
	tag, err := q.db.Exec(ctx, upsertOrderItem,
		arg.OrderID, arg.ASIN, arg.Quantity, arg.UnitPrice, arg.UnitPriceTax,
		arg.ShipmentStatus, arg.ShipDate, arg.CarrierName, arg.TrackingNumber,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMissingParent
	}
	return nil
}

const firstOrderItem = `
SELECT id FROM order_items
WHERE order_id = $1
ORDER BY id
LIMIT 1
`

// FirstOrderItem returns the lowest-id item of an order. The returns export
// identifies items only by order id, so returns attach to this item.
func (q *Queries) FirstOrderItem(ctx context.Context, orderID string) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, firstOrderItem, orderID).Scan(&id)
	return id, err
}
