package datasets

import (
	"context"
	"fmt"

	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
)

// registerDigitalBorrows handles the Digital.Borrows export (Kindle lending
// library and Prime Reading loans). Keyed by (asin, loan creation date).
func registerDigitalBorrows() {
	core.Register(core.Definition{
		Info: core.DatasetInfo{
			Key:          "digital_borrows",
			Label:        "Digital Borrows",
			FilePatterns: []string{"Digital.Borrows"},
			Sequence:     60,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "ASIN", Type: core.FieldText, Required: true},
			{Name: "ProductName", Aliases: []string{"Product Name"}, Type: core.FieldText},
			{Name: "LoanCreationDate", Type: core.FieldDate, Required: true},
			{Name: "LoanAcceptanceDate", Type: core.FieldDate},
			{Name: "LoanStatus", Type: core.FieldText},
			{Name: "LoanProgram", Type: core.FieldText},
			{Name: "EndDate", Type: core.FieldDate},
			{Name: "DeliveryDeviceName", Type: core.FieldText},
			{Name: "ContentType", Type: core.FieldText},
			{Name: "IsFirstContentLoan", Type: core.FieldBool},
		},
		ImportRow: importDigitalBorrowRow,
	})
}

func importDigitalBorrowRow(ctx context.Context, q *database.Queries, row core.Row) error {
	asin := row.Get("ASIN")
	if _, err := q.UpsertProduct(ctx, database.UpsertProductParams{
		ASIN:        asin,
		ProductName: core.ToPgText(row.Get("ProductName")),
	}); err != nil {
		return fmt.Errorf("resolve product %s: %w", asin, err)
	}

	firstLoan := core.ToPgBool(row.Get("IsFirstContentLoan"))
	if err := q.UpsertDigitalBorrow(ctx, database.UpsertDigitalBorrowParams{
		ASIN:               asin,
		LoanCreationDate:   core.ToPgTimestamp(row.Get("LoanCreationDate")),
		LoanAcceptanceDate: core.ToPgTimestamp(row.Get("LoanAcceptanceDate")),
		LoanStatus:         core.ToPgText(row.Get("LoanStatus")),
		LoanProgram:        core.ToPgText(row.Get("LoanProgram")),
		EndDate:            core.ToPgTimestamp(row.Get("EndDate")),
		DeliveryDeviceName: core.ToPgText(row.Get("DeliveryDeviceName")),
		ContentType:        core.ToPgText(row.Get("ContentType")),
		IsFirstContentLoan: firstLoan.Valid && firstLoan.Bool,
	}); err != nil {
		return fmt.Errorf("upsert digital borrow %s: %w", asin, err)
	}
	return nil
}
