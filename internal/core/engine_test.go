package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amzorders/importer/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// engineTx is a transaction stub recording the statements the row loop
// issues. Only the methods the engine calls are implemented.
type engineTx struct {
	pgx.Tx
	stmts     []string
	commits   int
	rollbacks int
}

func (t *engineTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	t.stmts = append(t.stmts, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *engineTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}

func (t *engineTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

type engineDB struct {
	stmts []string
	tx    *engineTx
}

func (d *engineDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	d.stmts = append(d.stmts, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (d *engineDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("query not supported")
}

func (d *engineDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func (d *engineDB) Begin(ctx context.Context) (pgx.Tx, error) {
	d.tx = &engineTx{}
	return d.tx, nil
}

func widgetDefinition(importRow func(context.Context, *database.Queries, Row) error) Definition {
	return Definition{
		Info:       DatasetInfo{Key: "widgets", Label: "Widgets"},
		FieldSpecs: []FieldSpec{{Name: "id", Type: FieldText, Required: true}},
		ImportRow:  importRow,
	}
}

func hasStmt(stmts []string, stmt string) bool {
	for _, s := range stmts {
		if s == stmt {
			return true
		}
	}
	return false
}

func TestImportData_RollsBackFailedRow(t *testing.T) {
	db := &engineDB{}
	imp := NewImporter(db)
	def := widgetDefinition(func(_ context.Context, _ *database.Queries, row Row) error {
		if row.Get("id") == "bad" {
			return errors.New("boom")
		}
		return nil
	})

	res, err := imp.ImportData(context.Background(), def, "widgets.csv", []byte("id\nok\nbad\nok2\n"))
	if err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}
	if res.TotalRows != 3 || res.Imported != 2 || res.Skipped != 1 {
		t.Fatalf("result = %d total, %d imported, %d skipped; want 3/2/1",
			res.TotalRows, res.Imported, res.Skipped)
	}
	if len(res.FailedRows) != 1 || res.FailedRows[0].LineNumber != 3 {
		t.Errorf("FailedRows = %+v, want one failure at line 3", res.FailedRows)
	}

	tx := db.tx
	if tx == nil {
		t.Fatal("no transaction started")
	}
	if !hasStmt(tx.stmts, "ROLLBACK TO SAVEPOINT row_1") {
		t.Errorf("failed row not rolled back to its savepoint: %v", tx.stmts)
	}
	if hasStmt(tx.stmts, "RELEASE SAVEPOINT row_1") {
		t.Error("failed row's savepoint should not be released")
	}
	if !hasStmt(tx.stmts, "RELEASE SAVEPOINT row_0") || !hasStmt(tx.stmts, "RELEASE SAVEPOINT row_2") {
		t.Errorf("good rows' savepoints should be released: %v", tx.stmts)
	}
	if tx.commits != 1 {
		t.Errorf("commits = %d, want 1", tx.commits)
	}

	// Run bookkeeping goes through the pool, outside the transaction.
	if len(db.stmts) != 2 {
		t.Errorf("pool statements = %v, want insert + finish of the run", db.stmts)
	}
}

func TestImportData_ContextCancelled(t *testing.T) {
	oldInterval := ContextCheckInterval
	ContextCheckInterval = 1
	defer func() { ContextCheckInterval = oldInterval }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := &engineDB{}
	imp := NewImporter(db)
	var rows int
	def := widgetDefinition(func(_ context.Context, _ *database.Queries, _ Row) error {
		rows++
		cancel()
		return nil
	})

	res, err := imp.ImportData(ctx, def, "widgets.csv", []byte("id\na\nb\nc\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ImportData() error = %v, want context.Canceled", err)
	}
	if rows != 1 {
		t.Errorf("rows imported after cancel = %d, want loop to stop at 1", rows)
	}
	if res == nil || res.Err == nil {
		t.Fatal("result should carry the run error")
	}
	if db.tx.commits != 0 {
		t.Error("cancelled run must not commit")
	}
	if db.tx.rollbacks == 0 {
		t.Error("cancelled run should roll back the transaction")
	}
}

func TestImportData_FileTimeout(t *testing.T) {
	oldTimeout := FileTimeout
	FileTimeout = time.Millisecond
	defer func() { FileTimeout = oldTimeout }()
	oldInterval := ContextCheckInterval
	ContextCheckInterval = 1
	defer func() { ContextCheckInterval = oldInterval }()

	db := &engineDB{}
	imp := NewImporter(db)
	def := widgetDefinition(func(ctx context.Context, _ *database.Queries, _ Row) error {
		<-ctx.Done()
		return nil
	})

	_, err := imp.ImportData(context.Background(), def, "widgets.csv", []byte("id\na\nb\n"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("ImportData() error = %v, want context.DeadlineExceeded", err)
	}
	if db.tx.commits != 0 {
		t.Error("timed-out run must not commit")
	}
}
