package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/affirm/internal/domain/model"
	"github.com/ericfisherdev/affirm/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MigrationLog = (*MigrationRepo)(nil)

// MigrationRepo is the SQLite implementation of the MigrationLog port interface.
type MigrationRepo struct {
	db *DB
}

// NewMigrationRepo creates a new MigrationRepo backed by the given DB.
func NewMigrationRepo(db *DB) *MigrationRepo {
	return &MigrationRepo{db: db}
}

// Record inserts a row for name unless one already exists. An empty name is
// stored as NULL.
func (r *MigrationRepo) Record(ctx context.Context, name string) (bool, error) {
	const query = `
		INSERT INTO d1_migrations (name)
		SELECT ?
		WHERE NOT EXISTS (SELECT 1 FROM d1_migrations WHERE name IS ?)
	`

	value := nullString(name)
	result, err := r.db.Writer.ExecContext(ctx, query, value, value)
	if err != nil {
		return false, fmt.Errorf("record migration %q: %w", name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check rows affected: %w", err)
	}

	return rows > 0, nil
}

// ListApplied returns every recorded migration ordered by id.
func (r *MigrationRepo) ListApplied(ctx context.Context) ([]model.MigrationRecord, error) {
	const query = `SELECT id, name, applied_at FROM d1_migrations ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()

	var records []model.MigrationRecord
	for rows.Next() {
		var rec model.MigrationRecord
		var name sql.NullString
		var appliedAt string

		if err := rows.Scan(&rec.ID, &name, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		rec.Name = name.String

		rec.AppliedAt, err = parseTime(appliedAt)
		if err != nil {
			return nil, fmt.Errorf("parse applied_at: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migrations: %w", err)
	}

	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// parseTime parses the timestamp layouts SQLite's CURRENT_TIMESTAMP and Go's
// driver may produce.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
