package datasets

import (
	"context"
	"errors"
	"fmt"

	"github.com/amzorders/importer/internal/amazon"
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
	"github.com/jackc/pgx/v5"
)

// registerRetailReturns handles the Retail.OrdersReturned export: one row per
// returned item, carrying the return authorization and, in newer export
// generations, the refund columns as well. Orders and items must already be
// imported; rows referencing unknown orders are skipped.
func registerRetailReturns() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "retail_returns",
			Label:        "Retail Returns & Refunds",
			FilePatterns: []string{"Retail.OrdersReturned"},
			Sequence:     20,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "OrderId", Aliases: []string{"Order ID", "Order-ID"}, Type: core.FieldText, Required: true},
			{Name: "ReturnAuthorizationId", Aliases: []string{"Return Authorization ID", "Return-Auth-ID"}, Type: core.FieldText, Required: true},
			{Name: "ReturnDate", Aliases: []string{"Return Date"}, Type: core.FieldDate},
			{Name: "ReturnReason", Aliases: []string{"Return Reason", "Reason"}, Type: core.FieldText},
			{Name: "ReturnStatus", Aliases: []string{"Return Status", "Status"}, Type: core.FieldText},
			{Name: "TrackingId", Aliases: []string{"Tracking ID"}, Type: core.FieldText},
			{Name: "ReturnShipOption", Aliases: []string{"Return Ship Option", "ShipOption"}, Type: core.FieldText},
			{Name: "ReversalId", Aliases: []string{"Reversal ID", "RefundId", "Refund ID"}, Type: core.FieldText},
			{Name: "RefundAmount", Aliases: []string{"Refund Amount", "Amount Refunded", "Amount"}, Type: core.FieldNumeric},
			{Name: "RefundDate", Aliases: []string{"Refund Date"}, Type: core.FieldDate},
			{Name: "RefundStatus", Aliases: []string{"Refund Status"}, Type: core.FieldText},
			{Name: "Currency", Aliases: []string{"CurrencyCode"}, Type: core.FieldText},
		},
		ImportRow: importReturnRow,
	})
}

func importReturnRow(ctx context.Context, q *database.Queries, row core.Row) error {
	returnStatus, err := amazon.ReturnStatus(row.Get("ReturnStatus"))
	if err != nil {
		return err
	}

	orderID := row.Get("OrderId")
	orderItemID, err := q.FirstOrderItem(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %s has no imported items: %w", orderID, database.ErrMissingParent)
		}
		return fmt.Errorf("look up order item for %s: %w", orderID, err)
	}

	authID := row.Get("ReturnAuthorizationId")
	returnID, err := q.UpsertReturn(ctx, database.UpsertReturnParams{
		ReturnAuthorizationID: authID,
		OrderItemID:           orderItemID,
		ReturnDate:            core.ToPgTimestamp(row.Get("ReturnDate")),
		ReturnStatus:          returnStatus,
		ReturnReason:          core.ToPgText(row.Get("ReturnReason")),
		TrackingID:            core.ToPgText(row.Get("TrackingId")),
		ReturnShipOption:      core.ToPgText(row.Get("ReturnShipOption")),
	})
	if err != nil {
		return fmt.Errorf("upsert return %s: %w", authID, err)
	}

	// Refund columns are only present in some export generations.
	if core.IsAbsent(row.Get("RefundAmount")) {
		return nil
	}

	reversalID := row.Get("ReversalId")
	if core.IsAbsent(reversalID) {
		reversalID = "REV-" + authID
	}

	if err := q.UpsertRefund(ctx, database.UpsertRefundParams{
		ReturnID:       returnID,
		ReversalID:     reversalID,
		AmountRefunded: amazon.MoneyOrZero(row.Get("RefundAmount")),
		RefundDate:     core.ToPgTimestamp(row.Get("RefundDate")),
		Status:         textOrDefault(row.Get("RefundStatus"), "Completed"),
		Currency:       textOrDefault(row.Get("Currency"), "USD"),
	}); err != nil {
		return fmt.Errorf("upsert refund %s: %w", reversalID, err)
	}
	return nil
}
