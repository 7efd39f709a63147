// Command importer loads Amazon order-history exports into Postgres.
//
// By default it walks the configured export directory and imports every
// CSV that matches a registered dataset, in dependency order. A single
// file can be imported with -file and -dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/amzorders/importer/internal/admin"
	"github.com/amzorders/importer/internal/config"
	"github.com/amzorders/importer/internal/core"
	_ "github.com/amzorders/importer/internal/datasets" // Register all datasets
	"github.com/amzorders/importer/internal/logging"
	"github.com/amzorders/importer/internal/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dir := flag.String("dir", "", "export directory to scan (default: IMPORT_ROOT)")
	file := flag.String("file", "", "import a single CSV file instead of scanning")
	dataset := flag.String("dataset", "", "dataset key for -file (default: match by file name)")
	sourcesFile := flag.String("sources", "", "YAML dataset overrides file (default: IMPORT_SOURCES_FILE)")
	reset := flag.Bool("reset", false, "truncate all importer tables before importing")
	flag.Parse()

	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if *dir != "" {
		cfg.Import.Root = *dir
	}
	if *sourcesFile != "" {
		cfg.Import.SourcesFile = *sourcesFile
	}

	sources, err := config.LoadSources(cfg.Import.SourcesFile)
	if err != nil {
		slog.Error("failed to load sources file", "error", err)
		os.Exit(1)
	}
	for _, key := range sources.DatasetKeys() {
		o, _ := sources.Override(key)
		if err := core.Override(key, o.Patterns, o.Disabled); err != nil {
			slog.Error("invalid dataset override", "dataset", key, "error", err)
			os.Exit(1)
		}
	}

	core.MaxFileSize = cfg.Import.MaxFileSize
	core.FileTimeout = cfg.Import.Timeout

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	if err := schema.Ensure(ctx, pool); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	if *reset {
		slog.Warn("resetting all importer tables")
		if err := admin.ResetAll(ctx, pool); err != nil {
			slog.Error("reset failed", "error", err)
			os.Exit(1)
		}
	}

	importer := core.NewImporter(pool)

	var results []*core.Result
	var runErr error
	if *file != "" {
		results, runErr = importOne(ctx, importer, *file, *dataset)
	} else {
		slog.Info("scanning export directory", "root", cfg.Import.Root)
		results, runErr = importer.ImportTree(ctx, cfg.Import.Root)
	}

	printSummary(results)

	if runErr != nil {
		slog.Error("import aborted", "error", runErr)
		os.Exit(1)
	}
}

// importOne imports a single file, matching the dataset by file name when
// no key is given.
func importOne(ctx context.Context, importer *core.Importer, path, key string) ([]*core.Result, error) {
	var def core.Definition
	var ok bool
	if key != "" {
		def, ok = core.Get(key)
		if !ok {
			return nil, fmt.Errorf("unknown dataset: %s", key)
		}
	} else {
		def, ok = core.Match(filepath.Base(path))
		if !ok {
			return nil, fmt.Errorf("no dataset matches %s; pass -dataset", path)
		}
	}

	res, err := importer.ImportFile(ctx, def, path)
	if res != nil {
		return []*core.Result{res}, err
	}
	return nil, err
}

// printSummary renders a per-file result table on stdout.
func printSummary(results []*core.Result) {
	if len(results) == 0 {
		fmt.Println("nothing imported")
		return
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Dataset", "File", "Rows", "Imported", "Skipped", "Duration")

	var rows, imported, skipped int
	for _, res := range results {
		status := res.Dataset
		if res.Err != nil {
			status += " (failed)"
		}
		table.Append(status, res.FileName,
			strconv.Itoa(res.TotalRows),
			strconv.Itoa(res.Imported),
			strconv.Itoa(res.Skipped),
			res.Duration.Round(time.Millisecond).String(),
		)
		rows += res.TotalRows
		imported += res.Imported
		skipped += res.Skipped
	}
	table.Footer("", "total",
		strconv.Itoa(rows), strconv.Itoa(imported), strconv.Itoa(skipped), "")
	table.Render()
}
