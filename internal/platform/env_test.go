package platform_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/platform"
)

func TestUseDB_MissingBinding(t *testing.T) {
	env := &platform.Env{}

	db, err := env.UseDB()
	assert.Nil(t, db)
	assert.ErrorIs(t, err, platform.ErrDatabaseBindingMissing)
}

func TestUseDB_NilEnv(t *testing.T) {
	var env *platform.Env

	_, err := env.UseDB()
	assert.ErrorIs(t, err, platform.ErrDatabaseBindingMissing)
}

func TestUseDB_BindsSchema(t *testing.T) {
	ctx := context.Background()
	raw, err := sqliteadapter.NewDB(ctx, filepath.Join(t.TempDir(), "affirm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	require.NoError(t, sqliteadapter.RunMigrations(ctx, raw))

	env := &platform.Env{DB: raw}

	db, err := env.UseDB()
	require.NoError(t, err)
	require.NoError(t, db.Ping(ctx))

	records, err := db.Migrations.ListApplied(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestEnv_AppName(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provides, err := application.Boot(context.Background(), logger, application.AppInitPlugin{AppName: "Affirm"})
	require.NoError(t, err)

	env := &platform.Env{Provides: provides}
	assert.Equal(t, "Affirm", env.AppName())

	var nilEnv *platform.Env
	assert.Equal(t, "", nilEnv.AppName())
}
