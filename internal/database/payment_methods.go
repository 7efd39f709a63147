package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertPaymentMethod = `
INSERT INTO payment_methods (payment_type, instrument)
VALUES ($1, $2)
ON CONFLICT (payment_type, instrument) DO UPDATE
SET is_active = TRUE
RETURNING id
`

// UpsertPaymentMethodParams is keyed by the (payment_type, instrument) pair.
type UpsertPaymentMethodParams struct {
	PaymentType string
	Instrument  pgtype.Text
}

// UpsertPaymentMethod finds or creates a payment method row and returns its id.
func (q *Queries) UpsertPaymentMethod(ctx context.Context, arg UpsertPaymentMethodParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertPaymentMethod, arg.PaymentType, arg.Instrument).Scan(&id)
	return id, err
}
