package sqlite

import (
	"context"
	"fmt"
)

// Database is the schema-typed handle over a DB: one repository per declared table.
type Database struct {
	Metadata   *MetadataRepo
	Migrations *MigrationRepo

	db *DB
}

// Bind attaches the declared schema's repositories to db. It performs no I/O.
func Bind(db *DB) *Database {
	return &Database{
		Metadata:   NewMetadataRepo(db),
		Migrations: NewMigrationRepo(db),
		db:         db,
	}
}

// Ping verifies that both the reader and writer pools can reach the database.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.Reader.PingContext(ctx); err != nil {
		return fmt.Errorf("ping reader: %w", err)
	}
	if err := d.db.Writer.PingContext(ctx); err != nil {
		return fmt.Errorf("ping writer: %w", err)
	}
	return nil
}
