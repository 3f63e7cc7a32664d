package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const upSuffix = ".up.sql"

// Migration is one embedded schema migration.
type Migration struct {
	Version uint
	// Name is the file name without the ".up.sql" suffix, e.g. "000002_create_metadata".
	// It is the value recorded in d1_migrations.
	Name  string
	UpSQL string
}

// Migrations returns every embedded up-migration ordered by version.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, upSuffix) {
			continue
		}

		name := strings.TrimSuffix(fileName, upSuffix)
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q: missing version prefix", fileName)
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %q: parse version: %w", fileName, err)
		}

		body, err := fs.ReadFile(migrationsFS, "migrations/"+fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %q: %w", fileName, err)
		}

		out = append(out, Migration{Version: uint(version), Name: name, UpSQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

// RunMigrations applies all pending database migrations embedded in the binary
// on the writer connection, then records every applied migration in
// d1_migrations. It is safe to call on every startup; already-applied
// migrations are skipped and already-recorded names are not duplicated.
func RunMigrations(ctx context.Context, db *DB) error {
	m, err := newMigrator(db.Writer)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	return recordApplied(ctx, NewMigrationRepo(db), version)
}

// recordApplied writes a d1_migrations row for every embedded migration at or
// below the current schema version.
func recordApplied(ctx context.Context, log *MigrationRepo, version uint) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if mig.Version > version {
			break
		}
		if _, err := log.Record(ctx, mig.Name); err != nil {
			return err
		}
	}

	return nil
}

// MigrationStatus reports the current schema version and whether the last
// migration left the database dirty. A database with no migrations applied
// reports version 0.
func MigrationStatus(db *sql.DB) (uint, bool, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}

	return version, dirty, nil
}
