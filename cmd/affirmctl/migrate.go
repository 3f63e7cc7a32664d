package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/affirm/internal/adapter/driven/d1"
	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/affirm/internal/config"
)

func runMigrate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	dbPath := fs.String("db", "", "Path to SQLite database file (default: the environment's db_path)")
	remote := fs.Bool("remote", false, "Target the remote D1 database instead of the local file")
	cacheDir := fs.String("cache-dir", "", "Directory for cached D1 API responses (default: <user cache dir>/affirm/d1)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: affirmctl migrate <subcommand> [options]

Subcommands:
  status    Show applied and pending migrations
  apply     Apply pending migrations

Examples:
  affirmctl migrate status
  affirmctl migrate apply -db affirm.db
  AFFIRM_ENV=production affirmctl migrate apply -remote

Options:
`)
		fs.PrintDefaults()
	}

	if len(args) == 0 {
		fs.Usage()
		return fmt.Errorf("subcommand required: status or apply")
	}

	subcmd := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if subcmd != "status" && subcmd != "apply" {
		fs.Usage()
		return fmt.Errorf("unknown migrate subcommand: %s", subcmd)
	}

	cfg, err := loadConfig(*dbPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *remote {
		return migrateRemote(ctx, cfg, subcmd, *cacheDir, out)
	}
	return migrateLocal(ctx, cfg, subcmd, out)
}

func migrateLocal(ctx context.Context, cfg *config.Config, subcmd string, out io.Writer) error {
	if subcmd == "status" {
		if _, err := os.Stat(cfg.DBPath); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "database: %s (%s)\n", cfg.DBPath, cfg.Environment)
			fmt.Fprintln(out, "no database; run 'affirmctl migrate apply' to create it")
			return nil
		}
	}

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	defer db.Close()

	if subcmd == "apply" {
		if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
			return err
		}
	}

	version, dirty, err := sqliteadapter.MigrationStatus(db.Writer)
	if err != nil {
		return err
	}

	migrations, err := sqliteadapter.Migrations()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "database: %s (%s)\n", cfg.DBPath, cfg.Environment)
	fmt.Fprintf(out, "schema version: %d", version)
	if dirty {
		fmt.Fprint(out, " (dirty)")
	}
	fmt.Fprintln(out)

	for _, mig := range migrations {
		fmt.Fprintf(out, "  %s  %s\n", stateLabel(mig.Version <= version), mig.Name)
	}

	return nil
}

func migrateRemote(ctx context.Context, cfg *config.Config, subcmd, cacheDir string, out io.Writer) error {
	creds, err := config.LoadD1Credentials(cfg.Binding.DatabaseID)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	cache, err := openResponseCache(cacheDir)
	if err != nil {
		logger.Warn("d1 response cache disabled", "error", err)
	}

	client, err := d1.NewClient(creds.AccountID, creds.DatabaseID, creds.Token, cache)
	if err != nil {
		return err
	}

	info, err := client.DatabaseInfo(ctx)
	if err != nil {
		return fmt.Errorf("look up D1 database: %w", err)
	}
	fmt.Fprintf(out, "database: %s (%s, %s)\n", info.Name, info.UUID, cfg.Environment)

	migrator := d1.NewMigrator(client, logger)

	if subcmd == "apply" {
		applied, err := migrator.Apply(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "applied %d migration(s)\n", len(applied))
	}

	states, err := migrator.Status(ctx)
	if err != nil {
		return err
	}
	for _, state := range states {
		fmt.Fprintf(out, "  %s  %s\n", stateLabel(state.Applied), state.Name)
	}

	return nil
}

// openResponseCache opens the on-disk D1 response cache at dir, or at
// d1.DefaultCacheDir when dir is empty.
func openResponseCache(dir string) (httpcache.Cache, error) {
	if dir == "" {
		var err error
		if dir, err = d1.DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	return d1.NewDiskCache(dir)
}

func stateLabel(applied bool) string {
	if applied {
		return "applied"
	}
	return "pending"
}
