package sqlite

import (
	"context"
	"testing"

	"github.com/ericfisherdev/affirm/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind_ExposesSchemaRepos(t *testing.T) {
	db := setupTestDB(t)
	handle := Bind(db)
	ctx := context.Background()

	require.NoError(t, handle.Ping(ctx))

	require.NoError(t, handle.Metadata.Set(ctx, model.MetadataEntry{Key: "k", Value: "v"}))
	entry, err := handle.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", entry.Value)

	records, err := handle.Migrations.ListApplied(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestDatabase_PingAfterClose(t *testing.T) {
	db := openTestDB(t)
	handle := Bind(db)

	require.NoError(t, db.Close())
	assert.Error(t, handle.Ping(context.Background()))
}
