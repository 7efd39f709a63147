// Package core provides the CSV import engine: field specifications, value
// conversion, row validation, the dataset registry, and the per-file import
// loop. It has no knowledge of individual Amazon export formats; those live
// in internal/datasets.
package core

import (
	"context"
	"strings"
	"time"

	"github.com/amzorders/importer/internal/database"
)

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
	FieldInt
)

// FieldSpec defines validation rules for a single CSV column.
//
// Amazon exports spell the same logical column several ways across export
// generations ("Order ID", "OrderId", ...), so a spec may carry aliases; the
// header index resolves whichever spelling the file uses.
type FieldSpec struct {
	Name       string   // Canonical column header name
	Aliases    []string // Alternate header spellings seen in the wild
	Type       FieldType
	Required   bool     // Column must exist in the CSV header
	AllowEmpty bool     // If true, empty values are allowed even when Required
	EnumValues []string // Valid values for FieldEnum type
	Normalizer func(string) string
}

// DatasetInfo identifies one CSV source.
type DatasetInfo struct {
	Key          string   // Unique identifier: "retail_orders"
	Label        string   // Display name: "Retail Order History"
	FilePatterns []string // File/directory name prefixes that select this dataset
	Sequence     int      // Import ordering; parents import before dependents
	Disabled     bool     // Excluded from directory scans when set
}

// HeaderIndex maps lowercased column names to their position in the CSV row.
type HeaderIndex map[string]int

// Row is one data row paired with its file's header index.
type Row struct {
	cells []string
	idx   HeaderIndex
}

// NewRow pairs raw cells with a header index.
func NewRow(cells []string, idx HeaderIndex) Row {
	return Row{cells: cells, idx: idx}
}

// Get returns the cleaned cell under the given header name, or "" when the
// column is absent from the file.
func (r Row) Get(name string) string {
	pos, ok := r.idx[strings.ToLower(name)]
	if !ok || pos >= len(r.cells) {
		return ""
	}
	return CleanCell(r.cells[pos])
}

// GetAny returns the first non-empty value among a canonical name and its
// aliases.
func (r Row) GetAny(names ...string) string {
	for _, n := range names {
		if v := r.Get(n); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether the file's header carries the given column.
func (r Row) Has(name string) bool {
	_, ok := r.idx[strings.ToLower(name)]
	return ok
}

// ImportRowFunc maps one validated CSV row into the database: it resolves
// dependent entities (product, address, payment method) and upserts the row.
// Returning an error skips the row; the engine rolls its savepoint back.
type ImportRowFunc func(ctx context.Context, q *database.Queries, row Row) error

// Definition contains everything needed to import one CSV source.
type Definition struct {
	Info       DatasetInfo
	FieldSpecs []FieldSpec
	ImportRow  ImportRowFunc
}

// RequiredColumns returns the header names the dataset cannot import without.
func (d Definition) RequiredColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// FailedRow records one row that was skipped during an import.
type FailedRow struct {
	FileName   string `json:"file_name"`
	LineNumber int    `json:"line_number"`
	Reason     string `json:"reason"`
}

// Result contains the outcome of importing one file.
type Result struct {
	RunID      string        `json:"run_id"`
	Dataset    string        `json:"dataset"`
	FileName   string        `json:"file_name"`
	TotalRows  int           `json:"total_rows"`
	Imported   int           `json:"imported"`
	Skipped    int           `json:"skipped"`
	FailedRows []FailedRow   `json:"failed_rows,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	Err        error         `json:"-"`
}
