package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Sentinel errors returned by Boot and Provider.
var (
	ErrDuplicateProvide = errors.New("value already provided")
	ErrDuplicatePlugin  = errors.New("plugin listed more than once")
	ErrUnknownPlugin    = errors.New("unknown plugin")
	ErrProvidesSealed   = errors.New("boot finished: provided values are read-only")
)

// Plugin is a unit of startup work. Boot calls Setup exactly once per process,
// before the HTTP server accepts requests.
type Plugin interface {
	Name() string
	Setup(ctx context.Context, p *Provider) error
}

// Provider is the write side handed to plugins during boot.
type Provider struct {
	mu     sync.Mutex
	plugin string
	values map[string]any
	owners map[string]string
	sealed bool
}

// Provide registers value under key. Keys must be non-empty and unique across
// all plugins.
func (p *Provider) Provide(key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed {
		return fmt.Errorf("provide %q: %w", key, ErrProvidesSealed)
	}
	if key == "" {
		return errors.New("provide: key must not be empty")
	}
	if owner, ok := p.owners[key]; ok {
		return fmt.Errorf("provide %q (already provided by %s): %w", key, owner, ErrDuplicateProvide)
	}

	p.values[key] = value
	p.owners[key] = p.plugin
	return nil
}

// Provides is the read-only set of values registered during boot. It is safe
// for concurrent use because it is never written after Boot returns.
type Provides struct {
	values map[string]any
}

// Get returns the value registered under key.
func (p *Provides) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// String returns the value under key if it is a string, or "".
func (p *Provides) String(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

// Keys returns all registered keys in sorted order.
func (p *Provides) Keys() []string {
	if p == nil {
		return []string{}
	}
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Boot runs each plugin's Setup once, in order, and returns the sealed set of
// provided values. The first failing plugin aborts boot.
func Boot(ctx context.Context, logger *slog.Logger, plugins ...Plugin) (*Provides, error) {
	provider := &Provider{
		values: make(map[string]any),
		owners: make(map[string]string),
	}
	seen := make(map[string]bool, len(plugins))

	for _, plugin := range plugins {
		name := plugin.Name()
		if seen[name] {
			return nil, fmt.Errorf("boot %s: %w", name, ErrDuplicatePlugin)
		}
		seen[name] = true

		provider.mu.Lock()
		provider.plugin = name
		provider.mu.Unlock()

		if err := plugin.Setup(ctx, provider); err != nil {
			return nil, fmt.Errorf("boot %s: %w", name, err)
		}
		logger.Info("plugin initialized", "plugin", name)
	}

	provider.mu.Lock()
	defer provider.mu.Unlock()
	provider.sealed = true

	values := make(map[string]any, len(provider.values))
	for k, v := range provider.values {
		values[k] = v
	}

	return &Provides{values: values}, nil
}

// SelectPlugins returns the plugins named in names, in that order, drawn from
// available. An unknown name is an error.
func SelectPlugins(names []string, available ...Plugin) ([]Plugin, error) {
	byName := make(map[string]Plugin, len(available))
	for _, p := range available {
		byName[p.Name()] = p
	}

	selected := make([]Plugin, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		selected = append(selected, p)
	}

	return selected, nil
}
