package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/amzorders/importer/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// MaxFileSize is the maximum allowed CSV file size (100MB).
var MaxFileSize int64 = 100 * 1024 * 1024

// FileTimeout bounds a single file import (default 10m). Zero disables it.
var FileTimeout = 10 * time.Minute

// ContextCheckInterval is how often the row loop checks for cancellation.
var ContextCheckInterval = 100

// DB is the pool surface the importer needs: direct statements for run
// bookkeeping plus a transaction for the row loop. Satisfied by
// *pgxpool.Pool.
type DB interface {
	database.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Importer runs dataset imports against a connection pool.
//
// Imports are single-threaded and row-by-row: each file gets one
// transaction, each row a savepoint, so a bad row is skipped without
// losing the rest of the file and a re-run is idempotent end to end.
type Importer struct {
	db DB
}

// NewImporter creates an Importer bound to the given pool.
func NewImporter(db DB) *Importer {
	return &Importer{db: db}
}

// ImportFile reads one CSV file from disk and imports it into the dataset.
func (imp *Importer) ImportFile(ctx context.Context, def Definition, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds %dMB limit", path, MaxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return imp.ImportData(ctx, def, filepath.Base(path), data)
}

// ImportData imports raw CSV bytes into the dataset.
//
// Row-level failures (malformed cells, enum violations, missing parents)
// are skipped and logged; the returned error is non-nil only for run-level
// failures such as a missing header or a lost database connection.
func (imp *Importer) ImportData(ctx context.Context, def Definition, fileName string, data []byte) (*Result, error) {
	if FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, FileTimeout)
		defer cancel()
	}

	start := time.Now()
	runID := uuid.New()
	logger := slog.Default().With("dataset", def.Info.Key, "file", fileName, "run_id", runID.String())

	result := &Result{
		RunID:    runID.String(),
		Dataset:  def.Info.Key,
		FileName: fileName,
	}

	if err := database.New(imp.db).InsertImportRun(ctx, database.InsertImportRunParams{
		ID:       pgtype.UUID{Bytes: runID, Valid: true},
		Dataset:  def.Info.Key,
		FileName: fileName,
	}); err != nil {
		return nil, fmt.Errorf("record import run: %w", err)
	}

	err := imp.importRows(ctx, def, data, fileName, logger, result)
	result.Duration = time.Since(start)
	result.Err = err

	runErr := pgtype.Text{Valid: false}
	if err != nil {
		runErr = pgtype.Text{String: err.Error(), Valid: true}
	}
	if finishErr := database.New(imp.db).FinishImportRun(ctx, database.FinishImportRunParams{
		ID:        pgtype.UUID{Bytes: runID, Valid: true},
		TotalRows: int32(result.TotalRows),
		Imported:  int32(result.Imported),
		Skipped:   int32(result.Skipped),
		Error:     runErr,
	}); finishErr != nil {
		logger.Error("finish import run", "error", finishErr)
	}

	if err != nil {
		logger.Error("import failed", "error", err, "duration", result.Duration)
		return result, err
	}

	logger.Info("import complete",
		"rows", result.TotalRows,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
	return result, nil
}

func (imp *Importer) importRows(ctx context.Context, def Definition, data []byte, fileName string, logger *slog.Logger, result *Result) error {
	records, err := ParseCSV(data)
	if err != nil {
		return fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("empty file")
	}

	headerRow, headerIdx, err := ResolveHeader(records, def.FieldSpecs)
	if err != nil {
		return err
	}
	dataRows := records[headerRow+1:]
	result.TotalRows = len(dataRows)

	tx, err := imp.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)

	for i, cells := range dataRows {
		lineNum := headerRow + i + 2 // 1-indexed, after header

		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if IsEmptyRow(cells) {
			result.TotalRows--
			continue
		}

		row := NewRow(cells, headerIdx)

		if err := ValidateRow(row, def.FieldSpecs); err != nil {
			imp.skipRow(result, logger, fileName, lineNum, err)
			continue
		}

		savepoint := fmt.Sprintf("row_%d", i)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return fmt.Errorf("create savepoint: %w", err)
		}

		if err := def.ImportRow(ctx, q, row); err != nil {
			if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return fmt.Errorf("rollback savepoint: %w", rbErr)
			}
			imp.skipRow(result, logger, fileName, lineNum, err)
			continue
		}

		if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
		result.Imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (imp *Importer) skipRow(result *Result, logger *slog.Logger, fileName string, lineNum int, err error) {
	result.Skipped++
	result.FailedRows = append(result.FailedRows, FailedRow{
		FileName:   fileName,
		LineNumber: lineNum,
		Reason:     err.Error(),
	})
	logger.Warn("row skipped", "line", lineNum, "reason", err.Error())
}

// ImportTree walks an export directory, matches every CSV file to a
// registered dataset, and imports the matches in dataset order. Files that
// match no dataset are logged and skipped.
func (imp *Importer) ImportTree(ctx context.Context, root string) ([]*Result, error) {
	type job struct {
		def  Definition
		path string
	}
	var jobs []job

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		def, ok := Match(filepath.Base(path))
		if !ok {
			// Directory names carry the dataset hint for files named after
			// their folder (Retail.OrderHistory.1/Retail.OrderHistory.1.csv)
			// as well as generically named ones.
			def, ok = Match(filepath.Base(filepath.Dir(path)))
		}
		if !ok {
			slog.Info("no dataset matches file, skipping", "file", path)
			return nil
		}
		jobs = append(jobs, job{def: def, path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].def.Info.Sequence < jobs[j].def.Info.Sequence
	})

	var results []*Result
	for _, j := range jobs {
		res, err := imp.ImportFile(ctx, j.def, j.path)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			// A run-level failure aborts the whole tree; partial data from
			// earlier files stays committed and a re-run is safe.
			return results, err
		}
	}
	return results, nil
}
