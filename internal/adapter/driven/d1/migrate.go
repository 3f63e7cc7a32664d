package d1

import (
	"context"
	"fmt"
	"log/slog"

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
)

// bookkeepingDDL creates the d1_migrations table if the remote database has
// never been migrated. It matches the first embedded migration.
const bookkeepingDDL = `CREATE TABLE IF NOT EXISTS d1_migrations (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT,
    applied_at NUMERIC DEFAULT (CURRENT_TIMESTAMP) NOT NULL
)`

// Querier is the subset of Client the Migrator needs.
type Querier interface {
	Query(ctx context.Context, sql string, params ...any) ([]QueryResult, error)
}

// MigrationState pairs an embedded migration with whether the remote has it.
type MigrationState struct {
	Name    string
	Applied bool
}

// Migrator applies the embedded sqlite migrations to a remote D1 database,
// tracking progress in d1_migrations by migration name.
type Migrator struct {
	db     Querier
	logger *slog.Logger
	source func() ([]sqliteadapter.Migration, error)
}

// NewMigrator creates a Migrator that reads migrations embedded in the sqlite adapter.
func NewMigrator(db Querier, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger, source: sqliteadapter.Migrations}
}

// Status lists every embedded migration and whether it is recorded remotely.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]MigrationState, 0, len(migrations))
	for _, mig := range migrations {
		states = append(states, MigrationState{Name: mig.Name, Applied: applied[mig.Name]})
	}
	return states, nil
}

// Apply runs every migration not yet recorded, in version order, recording
// each name after it succeeds. It returns the names applied by this call.
func (m *Migrator) Apply(ctx context.Context) ([]string, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range migrations {
		if applied[mig.Name] {
			continue
		}

		if _, err := m.db.Query(ctx, mig.UpSQL); err != nil {
			return done, fmt.Errorf("apply %s: %w", mig.Name, err)
		}
		if _, err := m.db.Query(ctx, `INSERT INTO d1_migrations (name) VALUES (?)`, mig.Name); err != nil {
			return done, fmt.Errorf("record %s: %w", mig.Name, err)
		}

		m.logger.Info("remote migration applied", "name", mig.Name)
		done = append(done, mig.Name)
	}

	return done, nil
}

func (m *Migrator) load(ctx context.Context) ([]sqliteadapter.Migration, map[string]bool, error) {
	migrations, err := m.source()
	if err != nil {
		return nil, nil, err
	}

	if _, err := m.db.Query(ctx, bookkeepingDDL); err != nil {
		return nil, nil, fmt.Errorf("ensure d1_migrations: %w", err)
	}

	results, err := m.db.Query(ctx, `SELECT name FROM d1_migrations WHERE name IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("list applied migrations: %w", err)
	}

	applied := make(map[string]bool)
	for _, result := range results {
		for _, row := range result.Results {
			if name, ok := row["name"].(string); ok {
				applied[name] = true
			}
		}
	}

	return migrations, applied, nil
}
