// Package config loads application configuration from environment variables,
// an optional .env file, and the deploy.yaml environment bindings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Environment string
	ListenAddr  string
	DBPath      string
	AppName     string
	LogLevel    slog.Level
	LogFormat   string

	// DeployConfigPath is empty when built-in deploy defaults are in use.
	DeployConfigPath string
	Deploy           *DeployConfig
	// Binding is the selected environment's entry from Deploy.
	Binding EnvironmentBinding
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Variables already set are not overridden and missing files
// are ignored. With no arguments it reads ".env".
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// Optional variables with defaults: AFFIRM_ENV (development),
// AFFIRM_LISTEN_ADDR (127.0.0.1:8080), AFFIRM_APP_NAME (Affirm),
// AFFIRM_DEPLOY_CONFIG (deploy.yaml, built-in defaults when absent),
// AFFIRM_DB_PATH (the environment's db_path), AFFIRM_LOG_LEVEL (info),
// AFFIRM_LOG_FORMAT (json in production, text elsewhere).
func Load() (*Config, error) {
	environment := EnvDevelopment
	if v, ok := os.LookupEnv("AFFIRM_ENV"); ok && v != "" {
		environment = strings.ToLower(strings.TrimSpace(v))
	}

	deploy, deployPath, err := loadDeploy()
	if err != nil {
		return nil, err
	}

	binding, err := deploy.Environment(environment)
	if err != nil {
		return nil, fmt.Errorf("AFFIRM_ENV: %w", err)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("AFFIRM_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := binding.DBPath
	if v, ok := os.LookupEnv("AFFIRM_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	appName := "Affirm"
	if v, ok := os.LookupEnv("AFFIRM_APP_NAME"); ok && v != "" {
		appName = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("AFFIRM_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("AFFIRM_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	logFormat := "text"
	if environment == EnvProduction {
		logFormat = "json"
	}
	if v, ok := os.LookupEnv("AFFIRM_LOG_FORMAT"); ok && v != "" {
		v = strings.ToLower(v)
		if v != "json" && v != "text" {
			return nil, fmt.Errorf("AFFIRM_LOG_FORMAT must be json or text, got %q", v)
		}
		logFormat = v
	}

	return &Config{
		Environment:      environment,
		ListenAddr:       listenAddr,
		DBPath:           dbPath,
		AppName:          appName,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		DeployConfigPath: deployPath,
		Deploy:           deploy,
		Binding:          binding,
	}, nil
}

// loadDeploy reads AFFIRM_DEPLOY_CONFIG, or ./deploy.yaml when it exists,
// falling back to DefaultDeployConfig. An explicitly configured path must exist.
func loadDeploy() (*DeployConfig, string, error) {
	path, explicit := os.LookupEnv("AFFIRM_DEPLOY_CONFIG")
	if !explicit || path == "" {
		path = "deploy.yaml"
		explicit = false
	}

	deploy, err := LoadDeployConfig(path)
	if err == nil {
		return deploy, path, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return DefaultDeployConfig(), "", nil
	}

	return nil, "", fmt.Errorf("AFFIRM_DEPLOY_CONFIG: %w", err)
}
