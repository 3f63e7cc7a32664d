package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv runs the command from an empty directory with the affirm
// variables cleared, so built-in deploy defaults apply.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"AFFIRM_ENV", "AFFIRM_DB_PATH", "AFFIRM_DEPLOY_CONFIG", "AFFIRM_LOG_LEVEL", "AFFIRM_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return filepath.Join(dir, "ctl.db")
}

func run(t *testing.T, fn func([]string, *bytes.Buffer) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := fn(args, &out)
	return out.String(), err
}

func meta(args []string, out *bytes.Buffer) error    { return runMeta(args, out) }
func migrate(args []string, out *bytes.Buffer) error { return runMigrate(args, out) }

func TestMeta_SetGetListDelete(t *testing.T) {
	db := isolateEnv(t)

	_, err := run(t, meta, "set", "-db", db, "site_title", "Affirm")
	require.NoError(t, err)
	_, err = run(t, meta, "set", "-db", db, "owner", "ops")
	require.NoError(t, err)

	out, err := run(t, meta, "get", "-db", db, "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Affirm\n", out)

	out, err = run(t, meta, "list", "-db", db)
	require.NoError(t, err)
	assert.Equal(t, "owner=ops\nsite_title=Affirm\n", out)

	_, err = run(t, meta, "delete", "-db", db, "owner")
	require.NoError(t, err)

	_, err = run(t, meta, "get", "-db", db, "owner")
	assert.ErrorContains(t, err, `no metadata entry "owner"`)
}

func TestMeta_SetOverwritesUnlessCreate(t *testing.T) {
	db := isolateEnv(t)

	_, err := run(t, meta, "set", "-db", db, "k", "one")
	require.NoError(t, err)
	_, err = run(t, meta, "set", "-db", db, "k", "two")
	require.NoError(t, err)

	_, err = run(t, meta, "set", "-db", db, "-create", "k", "three")
	assert.ErrorContains(t, err, "already exists")

	out, err := run(t, meta, "get", "-db", db, "k")
	require.NoError(t, err)
	assert.Equal(t, "two\n", out)
}

func TestMeta_ArgumentErrors(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, meta)
	assert.ErrorContains(t, err, "subcommand required")

	_, err = run(t, meta, "frobnicate")
	assert.ErrorContains(t, err, "unknown meta subcommand")

	_, err = run(t, meta, "set", "only-key")
	assert.ErrorContains(t, err, "expects 2 argument(s), got 1")
}

func TestMigrate_StatusWithoutDatabaseCreatesNothing(t *testing.T) {
	db := isolateEnv(t)

	out, err := run(t, migrate, "status", "-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no database")

	_, statErr := os.Stat(db)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "status must not create %s", db)
}

func TestMigrate_LocalApplyThenStatus(t *testing.T) {
	db := isolateEnv(t)

	out, err := run(t, migrate, "apply", "-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 2")
	assert.Equal(t, 2, strings.Count(out, "applied  "))
	assert.Contains(t, out, "(development)")

	out, err = run(t, migrate, "status", "-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "applied  000001_create_d1_migrations")
	assert.Contains(t, out, "applied  000002_create_metadata")
	assert.NotContains(t, out, "pending")
}

func TestOpenResponseCache_UsesGivenDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	cache, err := openResponseCache(dir)
	require.NoError(t, err)
	assert.NotNil(t, cache)
	assert.DirExists(t, dir)
}

func TestMigrate_RemoteRequiresCredentials(t *testing.T) {
	isolateEnv(t)
	for _, key := range []string{"CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_DATABASE_ID", "CLOUDFLARE_D1_TOKEN"} {
		t.Setenv(key, "")
	}

	_, err := run(t, migrate, "status", "-remote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOUDFLARE_ACCOUNT_ID")
	assert.Contains(t, err.Error(), "CLOUDFLARE_D1_TOKEN")
}

func TestMigrate_UnknownSubcommand(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, migrate, "rollback")
	assert.ErrorContains(t, err, "unknown migrate subcommand")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVersion(nil, &out))
	assert.True(t, strings.HasPrefix(out.String(), "v"))
}
