package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, uint(1), migrations[0].Version)
	assert.Equal(t, "000001_create_d1_migrations", migrations[0].Name)
	assert.Contains(t, migrations[0].UpSQL, "CREATE TABLE IF NOT EXISTS d1_migrations")

	assert.Equal(t, uint(2), migrations[1].Version)
	assert.Equal(t, "000002_create_metadata", migrations[1].Name)
	assert.True(t, strings.Contains(migrations[1].UpSQL, "metadata_key_unique"))
}

func TestRunMigrations_RecordsAppliedNames(t *testing.T) {
	db := setupTestDB(t)

	records, err := NewMigrationRepo(db).ListApplied(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "000001_create_d1_migrations", records[0].Name)
	assert.Equal(t, "000002_create_metadata", records[1].Name)
}

func TestRunMigrations_SafeToRerun(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))

	records, err := NewMigrationRepo(db).ListApplied(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "rerun must not duplicate bookkeeping rows")
}

func TestMigrationStatus(t *testing.T) {
	fresh := openTestDB(t)

	version, dirty, err := MigrationStatus(fresh.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, RunMigrations(context.Background(), fresh))

	version, dirty, err = MigrationStatus(fresh.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}

func TestRunMigrations_CreatesUniqueIndex(t *testing.T) {
	db := setupTestDB(t)

	var name string
	err := db.Reader.QueryRowContext(context.Background(),
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'metadata_key_unique'`,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "metadata_key_unique", name)
}
