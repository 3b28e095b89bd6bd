package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/coachlog/internal/config"
	"github.com/claude/coachlog/internal/importer"
	"github.com/claude/coachlog/internal/storage"
)

// coachlog-import merges a CSV training log into the configured snapshot
// store. Expected columns: date,session,exercise,sets,reps,load,rpe,rest,tempo.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "path to the CSV training log (required)")
	dryRun := flag.Bool("dry-run", false, "parse and report without saving")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		log.Error("-csv is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var store storage.Store
	switch cfg.Storage.Driver {
	case "postgres":
		store, err = storage.OpenPostgres(ctx, cfg.Storage.DSN())
	default:
		store, err = storage.OpenSQLite(cfg.Storage.Path)
	}
	if err != nil {
		log.Error("failed to open store", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("failed to open CSV", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	stats, err := importer.New(store, log, *dryRun).Import(ctx, f)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import complete",
		"rows_parsed", stats.RowsParsed,
		"rows_skipped", stats.RowsSkipped,
		"sessions_imported", stats.SessionsImported,
		"sessions_skipped", stats.SessionsSkipped,
		"dry_run", *dryRun,
	)
}
