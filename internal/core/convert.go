package core

// convert.go provides type conversion from CSV cells to PostgreSQL types.
//
// Amazon exports are messy: currency symbols and thousands separators in
// money columns, "Not Available" in place of empty cells, ISO-8601 dates
// with and without the Z suffix, Yes/No booleans. All ToPg* functions return
// pgtype values with Valid=false for empty or sentinel input so the database
// receives NULL.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// NotAvailable is the placeholder Amazon writes into absent cells.
const NotAvailable = "Not Available"

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// timestampLayouts cover the date formats seen across export generations.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
}

// IsAbsent reports whether a cell is empty or the Not Available sentinel.
func IsAbsent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, NotAvailable)
}

// ToPgText converts a string to pgtype.Text.
// Empty and "Not Available" cells become NULL.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if IsAbsent(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgTimestamp converts a string to pgtype.Timestamptz, trying each known
// layout in turn.
func ToPgTimestamp(s string) pgtype.Timestamptz {
	s = strings.TrimSpace(s)
	if IsAbsent(s) {
		return pgtype.Timestamptz{Valid: false}
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
		}
	}
	return pgtype.Timestamptz{Valid: false}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, stray quotes, and the
// accounting negative format "(123.45)".
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if IsAbsent(s) {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	replacer := strings.NewReplacer("$", "", "€", "", "£", "", ",", "", `"`, "", "'", "")
	s = strings.TrimSpace(replacer.Replace(s))

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToPgBool converts a string to pgtype.Bool.
// Accepts true/false, yes/no, t/f, y/n, 1/0.
func ToPgBool(s string) pgtype.Bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || strings.EqualFold(s, NotAvailable) {
		return pgtype.Bool{Valid: false}
	}

	switch s {
	case "true", "t", "yes", "y", "1":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{Valid: false}
	}
}

// ParseInt parses an integer cell, tolerating a trailing decimal point
// ("2.0" appears in some exports).
func ParseInt(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if IsAbsent(s) {
		return 0, false
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if strings.Trim(frac, "0") != "" {
			return 0, false
		}
		s = s[:i]
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// leading BOM, Excel formula prefix (="..."), and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
