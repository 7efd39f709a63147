package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertImportRun = `
INSERT INTO import_runs (id, dataset, file_name, started_at)
VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
`

// InsertImportRunParams starts the bookkeeping row for one file import.
type InsertImportRunParams struct {
	ID       pgtype.UUID
	Dataset  string
	FileName string
}

// InsertImportRun records the start of an import run.
func (q *Queries) InsertImportRun(ctx context.Context, arg InsertImportRunParams) error {
	_, err := q.db.Exec(ctx, insertImportRun, arg.ID, arg.Dataset, arg.FileName)
	return err
}

const finishImportRun = `
UPDATE import_runs
SET finished_at = CURRENT_TIMESTAMP,
    total_rows  = $2,
    imported    = $3,
    skipped     = $4,
    error       = $5
WHERE id = $1
`

// FinishImportRunParams closes an import run with its totals.
type FinishImportRunParams struct {
	ID        pgtype.UUID
	TotalRows int32
	Imported  int32
	Skipped   int32
	Error     pgtype.Text
}

// FinishImportRun records the outcome of an import run.
func (q *Queries) FinishImportRun(ctx context.Context, arg FinishImportRunParams) error {
	_, err := q.db.Exec(ctx, finishImportRun,
		arg.ID, arg.TotalRows, arg.Imported, arg.Skipped, arg.Error,
	)
	return err
}

const listImportRuns = `
SELECT id, dataset, file_name, started_at, finished_at, total_rows, imported, skipped, error
FROM import_runs
ORDER BY started_at DESC
LIMIT $1
`

// ImportRun is one row of import bookkeeping.
type ImportRun struct {
	ID         pgtype.UUID        `json:"id"`
	Dataset    string             `json:"dataset"`
	FileName   string             `json:"fileName"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt pgtype.Timestamptz `json:"finishedAt"`
	TotalRows  pgtype.Int4        `json:"totalRows"`
	Imported   pgtype.Int4        `json:"imported"`
	Skipped    pgtype.Int4        `json:"skipped"`
	Error      pgtype.Text        `json:"error"`
}

// ListImportRuns returns the most recent import runs, newest first.
func (q *Queries) ListImportRuns(ctx context.Context, limit int32) ([]ImportRun, error) {
	rows, err := q.db.Query(ctx, listImportRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.ID, &r.Dataset, &r.FileName, &r.StartedAt, &r.FinishedAt,
			&r.TotalRows, &r.Imported, &r.Skipped, &r.Error,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
