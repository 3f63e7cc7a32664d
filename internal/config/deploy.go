package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Deployment environment names.
const (
	EnvProduction  = "production"
	EnvStaging     = "staging"
	EnvDevelopment = "development"
)

// DeployConfig is the parsed deploy.yaml: one database binding per named
// environment plus the startup plugins to run.
type DeployConfig struct {
	Environments map[string]EnvironmentBinding `yaml:"environments"`
	Plugins      []string                      `yaml:"plugins"`
}

// EnvironmentBinding names the database an environment is bound to.
type EnvironmentBinding struct {
	// DatabaseName is the binding's human-readable database name.
	DatabaseName string `yaml:"database_name"`
	// DatabaseID identifies the remote D1 database used by migration tooling.
	DatabaseID string `yaml:"database_id"`
	// DBPath is the local SQLite file the server opens.
	DBPath string `yaml:"db_path"`
}

// DefaultDeployConfig returns the bindings used when no deploy.yaml exists.
func DefaultDeployConfig() *DeployConfig {
	return &DeployConfig{
		Environments: map[string]EnvironmentBinding{
			EnvProduction:  {DatabaseName: "affirm", DBPath: "affirm.db"},
			EnvStaging:     {DatabaseName: "affirm-staging", DBPath: "affirm-staging.db"},
			EnvDevelopment: {DatabaseName: "affirm-dev", DBPath: "affirm-dev.db"},
		},
		Plugins: []string{"app-init"},
	}
}

// LoadDeployConfig reads and validates a deploy.yaml file.
func LoadDeployConfig(path string) (*DeployConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deploy config: %w", err)
	}

	var cfg DeployConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse deploy config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills missing db paths and the plugin list.
func (c *DeployConfig) applyDefaults() {
	if c.Environments == nil {
		c.Environments = map[string]EnvironmentBinding{}
	}
	if _, ok := c.Environments[EnvDevelopment]; !ok {
		c.Environments[EnvDevelopment] = DefaultDeployConfig().Environments[EnvDevelopment]
	}
	for name, binding := range c.Environments {
		if binding.DBPath == "" {
			binding.DBPath = "affirm-" + name + ".db"
			c.Environments[name] = binding
		}
	}
	if c.Plugins == nil {
		c.Plugins = []string{"app-init"}
	}
}

// Validate checks that no two environments share a database id or db path.
func (c *DeployConfig) Validate() error {
	ids := map[string]string{}
	paths := map[string]string{}

	for _, name := range c.EnvironmentNames() {
		binding := c.Environments[name]
		if binding.DatabaseID != "" {
			if other, ok := ids[binding.DatabaseID]; ok {
				return fmt.Errorf("deploy config: environments %q and %q share database_id %q", other, name, binding.DatabaseID)
			}
			ids[binding.DatabaseID] = name
		}
		if other, ok := paths[binding.DBPath]; ok {
			return fmt.Errorf("deploy config: environments %q and %q share db_path %q", other, name, binding.DBPath)
		}
		paths[binding.DBPath] = name
	}

	return nil
}

// Environment returns the binding for the named environment.
func (c *DeployConfig) Environment(name string) (EnvironmentBinding, error) {
	binding, ok := c.Environments[name]
	if !ok {
		return EnvironmentBinding{}, fmt.Errorf("unknown environment %q (known: %v)", name, c.EnvironmentNames())
	}
	return binding, nil
}

// EnvironmentNames returns the configured environment names in sorted order.
func (c *DeployConfig) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
