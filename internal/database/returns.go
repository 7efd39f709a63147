package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertReturn = `
INSERT INTO returns (
    return_authorization_id, order_item_id, return_date,
    return_status, return_reason, tracking_id, return_ship_option
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (return_authorization_id) DO UPDATE
SET return_status = EXCLUDED.return_status,
    tracking_id   = EXCLUDED.tracking_id
RETURNING id
`

// UpsertReturnParams is keyed by the return authorization id and references
// an already-resolved order item.
type UpsertReturnParams struct {
	ReturnAuthorizationID string
	OrderItemID           int64
	ReturnDate            pgtype.Timestamptz
	ReturnStatus          string
	ReturnReason          pgtype.Text
	TrackingID            pgtype.Text
	ReturnShipOption      pgtype.Text
}

// UpsertReturn inserts or updates a return row and returns its surrogate id.
func (q *Queries) UpsertReturn(ctx context.Context, arg UpsertReturnParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertReturn,
		arg.ReturnAuthorizationID, arg.OrderItemID, arg.ReturnDate,
		arg.ReturnStatus, arg.ReturnReason, arg.TrackingID, arg.ReturnShipOption,
	).Scan(&id)
	return id, err
}

const upsertRefund = `
INSERT INTO refunds (
    return_id, reversal_id, amount_refunded, refund_date, status, currency
)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (reversal_id) DO UPDATE
SET amount_refunded = EXCLUDED.amount_refunded,
    refund_date     = EXCLUDED.refund_date,
    status          = EXCLUDED.status
`

// UpsertRefundParams is keyed by the reversal id and references a return row.
type UpsertRefundParams struct {
	ReturnID       int64
	ReversalID     string
	AmountRefunded pgtype.Numeric
	RefundDate     pgtype.Timestamptz
	Status         pgtype.Text
	Currency       pgtype.Text
}

// UpsertRefund inserts or updates a refund row.
func (q *Queries) UpsertRefund(ctx context.Context, arg UpsertRefundParams) error {
	_, err := q.db.Exec(ctx, upsertRefund,
		arg.ReturnID, arg.ReversalID, arg.AmountRefunded,
		arg.RefundDate, arg.Status, arg.Currency,
	)
	return err
}
