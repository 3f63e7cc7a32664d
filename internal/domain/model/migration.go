package model

import "time"

// MigrationRecord is a bookkeeping row written by the migration tooling each
// time a schema migration is applied. Name is nullable in storage and maps to
// the empty string here.
type MigrationRecord struct {
	ID        int64
	Name      string
	AppliedAt time.Time
}
