// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/affirm/internal/domain/model"
)

// Sentinel errors returned by MetadataStore implementations.
var (
	// ErrMetadataNotFound indicates no entry exists for the requested key.
	ErrMetadataNotFound = errors.New("metadata entry not found")

	// ErrMetadataKeyExists indicates an insert collided with an existing key.
	ErrMetadataKeyExists = errors.New("metadata key already exists")
)

// MetadataStore defines the driven port for the key/value metadata table.
// Insert returns ErrMetadataKeyExists on a duplicate key; Set upserts.
// Get and Delete return ErrMetadataNotFound for unknown keys.
type MetadataStore interface {
	Insert(ctx context.Context, entry model.MetadataEntry) error
	Set(ctx context.Context, entry model.MetadataEntry) error
	Get(ctx context.Context, key string) (*model.MetadataEntry, error)
	// ListAll returns every entry ordered by key.
	ListAll(ctx context.Context) ([]model.MetadataEntry, error)
	Delete(ctx context.Context, key string) error
}
