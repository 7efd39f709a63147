package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertAddress = `
INSERT INTO addresses (address_line1, address_line2, city, state, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (address_line1, city, state, postal_code) DO UPDATE
SET address_line2 = EXCLUDED.address_line2,
    country       = EXCLUDED.country
RETURNING id
`

// UpsertAddressParams holds one normalized address. The natural key is
// (address_line1, city, state, postal_code).
type UpsertAddressParams struct {
	AddressLine1 string
	AddressLine2 pgtype.Text
	City         pgtype.Text
	State        pgtype.Text
	PostalCode   pgtype.Text
	Country      pgtype.Text
}

// UpsertAddress finds or creates the address row and returns its surrogate id.
func (q *Queries) UpsertAddress(ctx context.Context, arg UpsertAddressParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertAddress,
		arg.AddressLine1, arg.AddressLine2, arg.City, arg.State, arg.PostalCode, arg.Country,
	).Scan(&id)
	return id, err
}
