package driven

import (
	"context"

	"github.com/ericfisherdev/affirm/internal/domain/model"
)

// MigrationLog defines the driven port for the d1_migrations bookkeeping table.
type MigrationLog interface {
	// Record appends a row for the named migration unless one already exists.
	// It reports whether a new row was written.
	Record(ctx context.Context, name string) (bool, error)
	// ListApplied returns every recorded migration ordered by id.
	ListApplied(ctx context.Context) ([]model.MigrationRecord, error)
}
