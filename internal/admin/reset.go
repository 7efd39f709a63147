// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amzorders/importer/internal/database"
)

// ResetTimeout is the maximum duration for database reset operations.
const ResetTimeout = 30 * time.Second

// ResetAll truncates every importer table and the import run history.
// This is a destructive operation - use with caution. Identity sequences
// restart so a fresh import reproduces the same surrogate keys.
func ResetAll(ctx context.Context, db database.DBTX) error {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	tables := append([]string{}, database.CountableTables...)
	tables = append(tables, "import_runs")

	stmt := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	if _, err := db.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("reset tables: %w", err)
	}
	return nil
}
