package datasets

import (
	"context"
	"fmt"

	"github.com/amzorders/importer/internal/amazon"
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
	"github.com/amzorders/importer/internal/schema"
)

// registerRetailOrders handles the Retail.OrderHistory export. One CSV row
// carries the order, its single line item, both addresses, and the payment
// instrument, so the importer resolves all reference rows before upserting
// the order and item.
func registerRetailOrders() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "retail_orders",
			Label:        "Retail Order History",
			FilePatterns: []string{"Retail.OrderHistory"},
			Sequence:     10,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Order ID", Aliases: []string{"OrderId", "Order-ID"}, Type: core.FieldText, Required: true},
			{Name: "ASIN", Type: core.FieldText, Required: true},
			{Name: "Product Name", Aliases: []string{"ProductName"}, Type: core.FieldText},
			{Name: "Website", Type: core.FieldText},
			{Name: "Order Date", Type: core.FieldDate},
			{Name: "Currency", Type: core.FieldText},
			{Name: "Order Status", Type: core.FieldEnum, EnumValues: schema.OrderStatuses},
			{Name: "Total Owed", Type: core.FieldNumeric},
			{Name: "Shipping Charge", Type: core.FieldNumeric},
			{Name: "Total Discounts", Type: core.FieldNumeric},
			{Name: "Quantity", Type: core.FieldInt, Required: true},
			{Name: "Unit Price", Type: core.FieldNumeric},
			{Name: "Unit Price Tax", Type: core.FieldNumeric},
			{Name: "Shipment Status", Type: core.FieldEnum, EnumValues: schema.ShipmentStatuses},
			{Name: "Ship Date", Type: core.FieldDate},
			{Name: "Shipping Address", Aliases: []string{"ShippingAddress", "Ship-Address", "Ship Address"}, Type: core.FieldText},
			{Name: "Billing Address", Aliases: []string{"BillingAddress", "Bill-Address", "Bill Address"}, Type: core.FieldText},
			{Name: "Payment Instrument Type", Type: core.FieldText},
			{Name: "Carrier Name & Tracking Number", Type: core.FieldText},
			{Name: "Product Condition", Type: core.FieldText},
		},
		ImportRow: importRetailOrderRow,
	})
}

func importRetailOrderRow(ctx context.Context, q *database.Queries, row core.Row) error {
	quantity, err := amazon.Quantity(row.Get("Quantity"))
	if err != nil {
		return err
	}
	orderStatus, err := amazon.OrderStatus(row.Get("Order Status"))
	if err != nil {
		return err
	}
	shipmentStatus, err := amazon.ShipmentStatus(row.Get("Shipment Status"))
	if err != nil {
		return err
	}

	asin := row.Get("ASIN")
	if _, err := q.UpsertProduct(ctx, database.UpsertProductParams{
		ASIN:        asin,
		ProductName: core.ToPgText(row.Get("Product Name")),
		Condition:   core.ToPgText(row.Get("Product Condition")),
	}); err != nil {
		return fmt.Errorf("resolve product %s: %w", asin, err)
	}

	// The order row is only written when every foreign key resolves; an
	// unparseable address fails the row rather than leaving a NULL FK.
	shipping, err := amazon.ParseAddress(row.Get("Shipping Address"))
	if err != nil {
		return fmt.Errorf("shipping address: %w", err)
	}
	billing, err := amazon.ParseAddress(row.Get("Billing Address"))
	if err != nil {
		return fmt.Errorf("billing address: %w", err)
	}

	shippingID, err := q.UpsertAddress(ctx, addressParams(
		shipping.Line1, shipping.Line2, shipping.City, shipping.State, shipping.PostalCode, shipping.Country,
	))
	if err != nil {
		return fmt.Errorf("resolve shipping address: %w", err)
	}
	billingID, err := q.UpsertAddress(ctx, addressParams(
		billing.Line1, billing.Line2, billing.City, billing.State, billing.PostalCode, billing.Country,
	))
	if err != nil {
		return fmt.Errorf("resolve billing address: %w", err)
	}

	// The retail export carries the instrument type only; the instrument
	// detail column stays NULL, and the natural key treats NULL as a value.
	paymentType := row.Get("Payment Instrument Type")
	if core.IsAbsent(paymentType) {
		paymentType = "Unknown"
	}
	paymentID, err := q.UpsertPaymentMethod(ctx, database.UpsertPaymentMethodParams{
		PaymentType: paymentType,
	})
	if err != nil {
		return fmt.Errorf("resolve payment method: %w", err)
	}

	orderID := row.Get("Order ID")
	if _, err := q.UpsertOrder(ctx, database.UpsertOrderParams{
		OrderID:           orderID,
		Website:           core.ToPgText(row.Get("Website")),
		OrderDate:         core.ToPgTimestamp(row.Get("Order Date")),
		Currency:          core.ToPgText(row.Get("Currency")),
		OrderStatus:       orderStatus,
		TotalOwed:         amazon.Money(row.Get("Total Owed")),
		ShippingCharge:    amazon.Money(row.Get("Shipping Charge")),
		TotalDiscounts:    amazon.Money(row.Get("Total Discounts")),
		ShippingAddressID: shippingID,
		BillingAddressID:  billingID,
		PaymentMethodID:   paymentID,
	}); err != nil {
		return fmt.Errorf("upsert order %s: %w", orderID, err)
	}

	carrier, tracking := amazon.SplitCarrierTracking(row.Get("Carrier Name & Tracking Number"))
	if err := q.UpsertOrderItem(ctx, database.UpsertOrderItemParams{
		OrderID:        orderID,
		ASIN:           asin,
		Quantity:       quantity,
		UnitPrice:      amazon.Money(row.Get("Unit Price")),
		UnitPriceTax:   amazon.Money(row.Get("Unit Price Tax")),
		ShipmentStatus: shipmentStatus,
		ShipDate:       core.ToPgTimestamp(row.Get("Ship Date")),
		CarrierName:    carrier,
		TrackingNumber: tracking,
	}); err != nil {
		return fmt.Errorf("upsert order item %s/%s: %w", orderID, asin, err)
	}
	return nil
}
