// Package platform carries the bindings the composition root hands to request
// handlers: the database, the values provided at boot, and the deployment
// environment name.
package platform

import (
	"errors"

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/affirm/internal/application"
)

// ErrDatabaseBindingMissing is returned by UseDB when the Env has no DB binding.
// It indicates a wiring mistake in the composition root.
var ErrDatabaseBindingMissing = errors.New("platform: database binding missing from env")

// Env is the execution context passed to every handler. It is built once at
// startup and never mutated afterwards.
type Env struct {
	DB          *sqliteadapter.DB
	Provides    *application.Provides
	Environment string
}

// UseDB binds the Env's raw database to the schema-typed handle.
func (e *Env) UseDB() (*sqliteadapter.Database, error) {
	if e == nil || e.DB == nil {
		return nil, ErrDatabaseBindingMissing
	}
	return sqliteadapter.Bind(e.DB), nil
}

// AppName returns the app name provided at boot.
func (e *Env) AppName() string {
	if e == nil {
		return ""
	}
	return e.Provides.String(application.ProvideAppName)
}
