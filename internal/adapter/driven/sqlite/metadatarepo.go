package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ericfisherdev/affirm/internal/domain/model"
	"github.com/ericfisherdev/affirm/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MetadataStore = (*MetadataRepo)(nil)

// MetadataRepo is the SQLite implementation of the MetadataStore port interface.
type MetadataRepo struct {
	db *DB
}

// NewMetadataRepo creates a new MetadataRepo backed by the given DB.
func NewMetadataRepo(db *DB) *MetadataRepo {
	return &MetadataRepo{db: db}
}

// Insert adds a new entry. Returns driven.ErrMetadataKeyExists if the key is taken.
func (r *MetadataRepo) Insert(ctx context.Context, entry model.MetadataEntry) error {
	const query = `INSERT INTO metadata (key, value) VALUES (?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, entry.Key, entry.Value)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert metadata %q: %w", entry.Key, driven.ErrMetadataKeyExists)
	}
	if err != nil {
		return fmt.Errorf("insert metadata %q: %w", entry.Key, err)
	}

	return nil
}

// Set inserts or updates an entry. On conflict the value is replaced.
func (r *MetadataRepo) Set(ctx context.Context, entry model.MetadataEntry) error {
	const query = `
		INSERT INTO metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.Writer.ExecContext(ctx, query, entry.Key, entry.Value); err != nil {
		return fmt.Errorf("set metadata %q: %w", entry.Key, err)
	}

	return nil
}

// Get retrieves one entry by key.
func (r *MetadataRepo) Get(ctx context.Context, key string) (*model.MetadataEntry, error) {
	const query = `SELECT key, value FROM metadata WHERE key = ?`

	var entry model.MetadataEntry
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&entry.Key, &entry.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get metadata %q: %w", key, driven.ErrMetadataNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata %q: %w", key, err)
	}

	return &entry, nil
}

// ListAll returns all entries ordered by key.
func (r *MetadataRepo) ListAll(ctx context.Context) ([]model.MetadataEntry, error) {
	const query = `SELECT key, value FROM metadata ORDER BY key`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	defer rows.Close()

	var entries []model.MetadataEntry
	for rows.Next() {
		var entry model.MetadataEntry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata: %w", err)
	}

	return entries, nil
}

// Delete removes an entry by key.
func (r *MetadataRepo) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM metadata WHERE key = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete metadata %q: %w", key, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete metadata %q: %w", key, driven.ErrMetadataNotFound)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite primary key or unique
// index constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
