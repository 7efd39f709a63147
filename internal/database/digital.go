package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertDigitalOrder = `
INSERT INTO digital_orders (
    order_id, delivery_packet_id, marketplace, order_date,
    fulfilled_date, is_fulfilled, currency
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (order_id) DO UPDATE
SET fulfilled_date = EXCLUDED.fulfilled_date,
    is_fulfilled   = EXCLUDED.is_fulfilled,
    updated_at     = CURRENT_TIMESTAMP
RETURNING id
`

// UpsertDigitalOrderParams maps one digital order keyed by its natural order id.
type UpsertDigitalOrderParams struct {
	OrderID          string
	DeliveryPacketID pgtype.Text
	Marketplace      pgtype.Text
	OrderDate        pgtype.Timestamptz
	FulfilledDate    pgtype.Timestamptz
	IsFulfilled      bool
	Currency         pgtype.Text
}

// UpsertDigitalOrder inserts or updates a digital order, returning its id.
func (q *Queries) UpsertDigitalOrder(ctx context.Context, arg UpsertDigitalOrderParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertDigitalOrder,
		arg.OrderID, arg.DeliveryPacketID, arg.Marketplace, arg.OrderDate,
		arg.FulfilledDate, arg.IsFulfilled, arg.Currency,
	).Scan(&id)
	return id, err
}

const upsertDigitalOrderItem = `
INSERT INTO digital_order_items (digital_order_id, product_id, quantity, unit_price)
SELECT d.id, p.id, $3, $4
FROM digital_orders d, products p
WHERE d.order_id = $1 AND p.asin = $2
ON CONFLICT (digital_order_id, product_id) DO UPDATE
SET quantity   = EXCLUDED.quantity,
    unit_price = EXCLUDED.unit_price
`

// UpsertDigitalOrderItemParams links a digital order by natural order id and
// a product by ASIN.
type UpsertDigitalOrderItemParams struct {
	OrderID   string
	ASIN      string
	Quantity  int32
	UnitPrice pgtype.Numeric
}

// UpsertDigitalOrderItem inserts or updates a digital order item. Returns
// ErrMissingParent when the digital order or product has not been imported.
func (q *Queries) UpsertDigitalOrderItem(ctx context.Context, arg UpsertDigitalOrderItemParams) error {
	tag, err := q.db.Exec(ctx, upsertDigitalOrderItem,
		arg.OrderID, arg.ASIN, arg.Quantity, arg.UnitPrice,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMissingParent
	}
	return nil
}

const upsertDigitalOrderPayment = `
INSERT INTO digital_order_payments (
    digital_order_id, transaction_amount, currency,
    claim_code, monetary_component_type, offer_type
)
SELECT d.id, $2, $3, $4, $5, $6
FROM digital_orders d
WHERE d.delivery_packet_id = $1
ON CONFLICT (digital_order_id, monetary_component_type, transaction_amount) DO NOTHING
`

// UpsertDigitalOrderPaymentParams links a payment to a digital order by
// delivery packet id.
type UpsertDigitalOrderPaymentParams struct {
	DeliveryPacketID      string
	TransactionAmount     pgtype.Numeric
	Currency              pgtype.Text
	ClaimCode             pgtype.Text
	MonetaryComponentType pgtype.Text
	OfferType             pgtype.Text
}

// UpsertDigitalOrderPayment inserts a payment component row. Returns
// ErrMissingParent when no digital order carries the delivery packet id;
// re-importing an existing component is a no-op.
func (q *Queries) UpsertDigitalOrderPayment(ctx context.Context, arg UpsertDigitalOrderPaymentParams) error {
	tag, err := q.db.Exec(ctx, upsertDigitalOrderPayment,
		arg.DeliveryPacketID, arg.TransactionAmount, arg.Currency,
		arg.ClaimCode, arg.MonetaryComponentType, arg.OfferType,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM digital_orders WHERE delivery_packet_id = $1)`,
			arg.DeliveryPacketID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrMissingParent
		}
	}
	return nil
}

const upsertDigitalBorrow = `
INSERT INTO digital_borrows (
    asin, loan_creation_date, loan_acceptance_date, loan_status, loan_program,
    end_date, delivery_device_name, content_type, is_first_content_loan
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (asin, loan_creation_date) DO UPDATE
SET loan_acceptance_date = EXCLUDED.loan_acceptance_date,
    loan_status          = EXCLUDED.loan_status,
    end_date             = EXCLUDED.end_date
`

// UpsertDigitalBorrowParams is keyed by (asin, loan_creation_date). The
// product row must exist first.
type UpsertDigitalBorrowParams struct {
	ASIN               string
	LoanCreationDate   pgtype.Timestamptz
	LoanAcceptanceDate pgtype.Timestamptz
	LoanStatus         pgtype.Text
	LoanProgram        pgtype.Text
	EndDate            pgtype.Timestamptz
	DeliveryDeviceName pgtype.Text
	ContentType        pgtype.Text
	IsFirstContentLoan bool
}

// UpsertDigitalBorrow inserts or updates a borrow row.
func (q *Queries) UpsertDigitalBorrow(ctx context.Context, arg UpsertDigitalBorrowParams) error {
	_, err := q.db.Exec(ctx, upsertDigitalBorrow,
		arg.ASIN, arg.LoanCreationDate, arg.LoanAcceptanceDate, arg.LoanStatus,
		arg.LoanProgram, arg.EndDate, arg.DeliveryDeviceName, arg.ContentType,
		arg.IsFirstContentLoan,
	)
	return err
}
