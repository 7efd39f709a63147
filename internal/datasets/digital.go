package datasets

import (
	"context"
	"fmt"
	"strings"

	"github.com/amzorders/importer/internal/amazon"
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
)

// The Digital-Ordering export splits one purchase across three files:
// Digital Orders.csv, Digital Items.csv, and Digital Orders Monetary.csv.
// Orders must import first; items link by order id and payments by
// delivery packet id.

func registerDigitalOrders() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "digital_orders",
			Label:        "Digital Orders",
			FilePatterns: []string{"Digital Orders.csv", "Digital Orders."},
			Sequence:     30,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "OrderId", Aliases: []string{"Order ID"}, Type: core.FieldText, Required: true},
			{Name: "DeliveryPacketId", Type: core.FieldText},
			{Name: "Marketplace", Type: core.FieldText},
			{Name: "OrderDate", Aliases: []string{"Order Date"}, Type: core.FieldDate},
			{Name: "DeliveryDate", Type: core.FieldDate},
			{Name: "DeliveryStatus", Type: core.FieldText},
			{Name: "BaseCurrencyCode", Type: core.FieldText},
		},
		ImportRow: importDigitalOrderRow,
	})
}

func importDigitalOrderRow(ctx context.Context, q *database.Queries, row core.Row) error {
	orderID := row.Get("OrderId")
	fulfilled := strings.EqualFold(row.Get("DeliveryStatus"), "Delivery Complete")

	if _, err := q.UpsertDigitalOrder(ctx, database.UpsertDigitalOrderParams{
		OrderID:          orderID,
		DeliveryPacketID: core.ToPgText(row.Get("DeliveryPacketId")),
		Marketplace:      core.ToPgText(row.Get("Marketplace")),
		OrderDate:        core.ToPgTimestamp(row.Get("OrderDate")),
		FulfilledDate:    core.ToPgTimestamp(row.Get("DeliveryDate")),
		IsFulfilled:      fulfilled,
		Currency:         textOrDefault(row.Get("BaseCurrencyCode"), "USD"),
	}); err != nil {
		return fmt.Errorf("upsert digital order %s: %w", orderID, err)
	}
	return nil
}

func registerDigitalItems() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "digital_items",
			Label:        "Digital Order Items",
			FilePatterns: []string{"Digital Items.csv", "Digital Items."},
			Sequence:     40,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "OrderId", Aliases: []string{"Order ID"}, Type: core.FieldText, Required: true},
			{Name: "ASIN", Type: core.FieldText, Required: true},
			{Name: "ProductName", Aliases: []string{"Product Name"}, Type: core.FieldText},
			{Name: "QuantityOrdered", Aliases: []string{"Quantity"}, Type: core.FieldInt},
			{Name: "OurPrice", Aliases: []string{"Unit Price"}, Type: core.FieldNumeric},
		},
		ImportRow: importDigitalItemRow,
	})
}

func importDigitalItemRow(ctx context.Context, q *database.Queries, row core.Row) error {
	// The export omits the quantity for single-unit purchases.
	quantity := one
	if raw := row.Get("QuantityOrdered"); !core.IsAbsent(raw) {
		var err error
		quantity, err = amazon.Quantity(raw)
		if err != nil {
			return err
		}
	}

	asin := row.Get("ASIN")
	if _, err := q.UpsertProduct(ctx, database.UpsertProductParams{
		ASIN:        asin,
		ProductName: core.ToPgText(row.Get("ProductName")),
	}); err != nil {
		return fmt.Errorf("resolve product %s: %w", asin, err)
	}

	orderID := row.Get("OrderId")
	if err := q.UpsertDigitalOrderItem(ctx, database.UpsertDigitalOrderItemParams{
		OrderID:   orderID,
		ASIN:      asin,
		Quantity:  quantity,
		UnitPrice: amazon.Money(row.Get("OurPrice")),
	}); err != nil {
		return fmt.Errorf("upsert digital item %s/%s: %w", orderID, asin, err)
	}
	return nil
}

func registerDigitalPayments() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "digital_payments",
			Label:        "Digital Order Payments",
			FilePatterns: []string{"Digital Orders Monetary.csv", "Digital Orders Monetary."},
			Sequence:     50,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "DeliveryPacketId", Type: core.FieldText, Required: true},
			{Name: "TransactionAmount", Type: core.FieldNumeric},
			{Name: "BaseCurrencyCode", Type: core.FieldText},
			{Name: "ClaimCode", Type: core.FieldText},
			{Name: "MonetaryComponentTypeCode", Type: core.FieldText},
			{Name: "OfferTypeCode", Type: core.FieldText},
		},
		ImportRow: importDigitalPaymentRow,
	})
}

func importDigitalPaymentRow(ctx context.Context, q *database.Queries, row core.Row) error {
	packetID := row.Get("DeliveryPacketId")
	if err := q.UpsertDigitalOrderPayment(ctx, database.UpsertDigitalOrderPaymentParams{
		DeliveryPacketID:      packetID,
		TransactionAmount:     amazon.MoneyOrZero(row.Get("TransactionAmount")),
		Currency:              textOrDefault(row.Get("BaseCurrencyCode"), "USD"),
		ClaimCode:             core.ToPgText(row.Get("ClaimCode")),
		MonetaryComponentType: core.ToPgText(row.Get("MonetaryComponentTypeCode")),
		OfferType:             core.ToPgText(row.Get("OfferTypeCode")),
	}); err != nil {
		return fmt.Errorf("upsert digital payment for packet %s: %w", packetID, err)
	}
	return nil
}
