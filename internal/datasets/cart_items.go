package datasets

import (
	"context"
	"fmt"

	"github.com/amzorders/importer/internal/amazon"
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
)

// registerCartItems handles the Retail.CartItems export: items currently in
// the active or saved-for-later cart. The export carries no product name, so
// the resolved product row may be name-less until another source fills it in.
func registerCartItems() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "cart_items",
			Label:        "Cart Items",
			FilePatterns: []string{"Retail.CartItems"},
			Sequence:     70,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "ASIN", Type: core.FieldText, Required: true},
			{Name: "ProductName", Aliases: []string{"Product Name"}, Type: core.FieldText},
			{Name: "Quantity", Type: core.FieldInt, Required: true},
			{Name: "DateAddedToCart", Aliases: []string{"Date Added To Cart"}, Type: core.FieldDate},
			{Name: "CartList", Aliases: []string{"Cart List"}, Type: core.FieldText},
			{Name: "OneClickBuyable", Type: core.FieldBool},
			{Name: "ToBeGifted", Type: core.FieldBool},
		},
		ImportRow: importCartItemRow,
	})
}

func importCartItemRow(ctx context.Context, q *database.Queries, row core.Row) error {
	quantity, err := amazon.Quantity(row.Get("Quantity"))
	if err != nil {
		return err
	}

	asin := row.Get("ASIN")
	if _, err := q.UpsertProduct(ctx, database.UpsertProductParams{
		ASIN:        asin,
		ProductName: core.ToPgText(row.Get("ProductName")),
	}); err != nil {
		return fmt.Errorf("resolve product %s: %w", asin, err)
	}

	if err := q.UpsertCartItem(ctx, database.UpsertCartItemParams{
		ASIN:            asin,
		CartList:        core.ToPgText(row.Get("CartList")),
		Quantity:        quantity,
		DateAdded:       core.ToPgTimestamp(row.Get("DateAddedToCart")),
		OneClickBuyable: amazon.YesNo(row.Get("OneClickBuyable")),
		ToBeGifted:      amazon.YesNo(row.Get("ToBeGifted")),
	}); err != nil {
		return fmt.Errorf("upsert cart item %s: %w", asin, err)
	}
	return nil
}
