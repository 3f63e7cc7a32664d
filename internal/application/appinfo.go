package application

import (
	"runtime/debug"
	"strings"
	"sync"
)

// DefaultAppName is the display name used when none is configured.
const DefaultAppName = "Affirm"

const fallbackVersion = "v0.1.0"

// version is set at link time: -ldflags "-X github.com/ericfisherdev/affirm/internal/application.version=v1.2.3".
var version string

// AppInfo holds the application's display metadata. The greeting is derived
// from the current name and version on every read, so it always reflects
// the latest values.
type AppInfo struct {
	mu      sync.RWMutex
	name    string
	version string
}

// NewAppInfo creates an AppInfo with the given name and version.
func NewAppInfo(name, version string) *AppInfo {
	return &AppInfo{name: name, version: version}
}

// DefaultAppInfo creates an AppInfo named DefaultAppName at BuildVersion().
func DefaultAppInfo() *AppInfo {
	return NewAppInfo(DefaultAppName, BuildVersion())
}

// Name returns the display name.
func (a *AppInfo) Name() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name
}

// Version returns the version string.
func (a *AppInfo) Version() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.version
}

// Greeting returns "Welcome to <name> <version>".
func (a *AppInfo) Greeting() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return "Welcome to " + a.name + " " + a.version
}

// SetName replaces the display name.
func (a *AppInfo) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// SetVersion replaces the version string.
func (a *AppInfo) SetVersion(version string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.version = version
}

// BuildVersion resolves the binary's version: the link-time value if set,
// then the main module version from the embedded build info, then v0.1.0.
// The result always carries a leading "v".
func BuildVersion() string {
	return resolveVersion(version, readModuleVersion())
}

func readModuleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}

func resolveVersion(linked, module string) string {
	v := strings.TrimSpace(linked)
	if v == "" && module != "(devel)" {
		v = strings.TrimSpace(module)
	}
	if v == "" {
		v = fallbackVersion
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
