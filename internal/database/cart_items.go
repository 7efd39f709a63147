package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertCartItem = `
INSERT INTO cart_items (
    asin, cart_list, quantity, date_added, one_click_buyable, to_be_gifted
)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (asin, date_added) DO UPDATE
SET cart_list = EXCLUDED.cart_list,
    quantity  = EXCLUDED.quantity
`

// UpsertCartItemParams is keyed by (asin, date_added). The product row must
// exist first.
type UpsertCartItemParams struct {
	ASIN            string
	CartList        pgtype.Text
	Quantity        int32
	DateAdded       pgtype.Timestamptz
	OneClickBuyable pgtype.Bool
	ToBeGifted      pgtype.Bool
}

// UpsertCartItem inserts or updates a cart item row.
func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) error {
	_, err := q.db.Exec(ctx, upsertCartItem,
		arg.ASIN, arg.CartList, arg.Quantity, arg.DateAdded,
		arg.OneClickBuyable, arg.ToBeGifted,
	)
	return err
}
