// Package amazon parses the value formats particular to Amazon order-history
// exports: single-string addresses, "Not Available" sentinels, status
// vocabularies, and combined carrier/tracking cells.
package amazon

import (
	"strings"

	"github.com/amzorders/importer/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

// Money converts a monetary cell to pgtype.Numeric, treating empty and
// "Not Available" as NULL.
func Money(s string) pgtype.Numeric {
	return core.ToPgNumeric(s)
}

// MoneyOrZero converts a monetary cell, defaulting absent values to 0.
// The digital payments export writes "Not Available" for zero components.
func MoneyOrZero(s string) pgtype.Numeric {
	n := core.ToPgNumeric(s)
	if !n.Valid {
		return core.ToPgNumeric("0")
	}
	return n
}

// YesNo converts the export's Yes/No cells to pgtype.Bool.
func YesNo(s string) pgtype.Bool {
	return core.ToPgBool(s)
}

// SplitCarrierTracking splits a "Carrier Name & Tracking Number" cell of the
// form "AMZN_US(TBA123456789)" or "USPS(9400...)" into its parts. A cell
// without the parenthesized tracking id yields only the carrier.
func SplitCarrierTracking(s string) (carrier, tracking pgtype.Text) {
	s = strings.TrimSpace(s)
	if core.IsAbsent(s) {
		return pgtype.Text{}, pgtype.Text{}
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		return core.ToPgText(s), pgtype.Text{}
	}

	carrier = core.ToPgText(s[:open])
	tracking = core.ToPgText(strings.TrimSuffix(s[open+1:], ")"))
	return carrier, tracking
}
