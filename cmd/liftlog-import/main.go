package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/importstate"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/ingest/csvfile"
	"github.com/claude/liftlog/internal/ingest/health"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	importPath := flag.String("path", "", "CSV/JSON export file or directory (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *importPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path /path/to/exports [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*importPath)
	if err != nil {
		log.Error("import path does not exist", "path", *importPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Pick the store. Dry runs merge into memory and write nothing.
	var st store.Store
	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
		st = store.NewMemory()
	} else {
		dsn := cfg.Database.DSN()
		if err := store.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		db, err := store.NewPostgres(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
		st = db
	}

	state, err := importstate.Open(cfg.Import.StatePath)
	if err != nil {
		log.Error("failed to open import state", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	engine := reconcile.NewEngine(st, log)

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(*importPath)
		if err != nil {
			log.Error("failed to read directory", "error", err)
			os.Exit(1)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".csv", ".json":
				files = append(files, filepath.Join(*importPath, e.Name()))
			}
		}
	} else {
		files = []string{*importPath}
	}

	var processed, skipped, errored int
	for _, path := range files {
		res, err := importFile(ctx, engine, state, path, *dryRun, log)
		switch {
		case err != nil:
			log.Error("import failed", "file", path, "error", err)
			errored++
		case res == nil:
			log.Info("skipping already-imported file", "file", path)
			skipped++
		default:
			log.Info("file imported",
				"file", path,
				"workouts", res.WorkoutsImported,
				"exercises", res.ExercisesImported,
				"errors", len(res.Errors),
			)
			for _, msg := range res.Errors {
				log.Warn("import item error", "file", path, "error", msg)
			}
			processed++
		}
	}

	log.Info("import complete", "processed", processed, "skipped", skipped, "errored", errored)
	if errored > 0 {
		os.Exit(1)
	}
}

// importFile imports one export file. A nil result with nil error means
// the file was skipped as already imported.
func importFile(ctx context.Context, engine *reconcile.Engine, state *importstate.DB, path string, dryRun bool, log *slog.Logger) (*ingest.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	hash, err := importstate.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}

	done, err := state.IsImported(path, info.Size(), hash)
	if err != nil {
		return nil, fmt.Errorf("checking import state: %w", err)
	}
	if done {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var res *ingest.Result
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		res, err = health.NewProvider(engine, log).Ingest(ctx, f)
	default:
		res, err = csvfile.NewProvider(engine, log).Ingest(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	if res.Success() && !dryRun {
		if err := state.MarkImported(path, info.Size(), hash); err != nil {
			return nil, fmt.Errorf("recording import state: %w", err)
		}
	}
	return res, nil
}
