package sqlite

import (
	"context"
	"testing"

	"github.com/ericfisherdev/affirm/internal/domain/model"
	"github.com/ericfisherdev/affirm/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRepo_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)
	ctx := context.Background()

	err := repo.Insert(ctx, model.MetadataEntry{Key: "site_title", Value: "Affirm"})
	require.NoError(t, err)

	entry, err := repo.Get(ctx, "site_title")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "site_title", entry.Key)
	assert.Equal(t, "Affirm", entry.Value)
}

func TestMetadataRepo_InsertDuplicateKeyRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, model.MetadataEntry{Key: "k", Value: "first"}))

	err := repo.Insert(ctx, model.MetadataEntry{Key: "k", Value: "second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrMetadataKeyExists)

	entry, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", entry.Value, "failed insert must not overwrite")
}

func TestMetadataRepo_RawDuplicateInsertViolatesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Writer.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES ('dup', 'a')`)
	require.NoError(t, err)

	_, err = db.Writer.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES ('dup', 'b')`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestMetadataRepo_ValueNotNull(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Writer.ExecContext(context.Background(), `INSERT INTO metadata (key, value) VALUES ('k', NULL)`)
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err))
}

func TestMetadataRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)

	entry, err := repo.Get(context.Background(), "nope")
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, driven.ErrMetadataNotFound)
}

func TestMetadataRepo_SetUpserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, model.MetadataEntry{Key: "theme", Value: "light"}))
	require.NoError(t, repo.Set(ctx, model.MetadataEntry{Key: "theme", Value: "dark"}))

	entry, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", entry.Value)

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMetadataRepo_ListAllOrderedByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)
	ctx := context.Background()

	for _, key := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, repo.Insert(ctx, model.MetadataEntry{Key: key, Value: key + "-value"}))
	}

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "bravo", entries[1].Key)
	assert.Equal(t, "charlie", entries[2].Key)
	assert.Equal(t, "charlie-value", entries[2].Value)
}

func TestMetadataRepo_ListAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)

	entries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMetadataRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMetadataRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, model.MetadataEntry{Key: "gone", Value: "soon"}))
	require.NoError(t, repo.Delete(ctx, "gone"))

	_, err := repo.Get(ctx, "gone")
	assert.ErrorIs(t, err, driven.ErrMetadataNotFound)

	err = repo.Delete(ctx, "gone")
	assert.ErrorIs(t, err, driven.ErrMetadataNotFound)
}
