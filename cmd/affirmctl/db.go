package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/affirm/internal/config"
)

// loadConfig loads the environment configuration; dbPath, when set,
// overrides the environment's database file.
func loadConfig(dbPath string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return cfg.NewLogger(os.Stderr)
}

// openLocal opens the sqlite database at cfg.DBPath and brings its schema up
// to date, so meta commands never run against a missing table.
func openLocal(ctx context.Context, cfg *config.Config) (*sqliteadapter.DB, error) {
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
