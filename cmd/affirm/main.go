package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/affirm/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/affirm/internal/adapter/driving/web"
	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/config"
	"github.com/ericfisherdev/affirm/internal/platform"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env first, existing env vars win).
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"env", cfg.Environment,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"database", cfg.Binding.DatabaseName,
		"deploy_config", cfg.DeployConfigPath,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", db.Path())

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Run startup plugins before any request is served.
	plugins, err := application.SelectPlugins(cfg.Deploy.Plugins,
		application.AppInitPlugin{AppName: cfg.AppName},
	)
	if err != nil {
		return err
	}
	provides, err := application.Boot(ctx, logger, plugins...)
	if err != nil {
		return err
	}

	env := &platform.Env{
		DB:          db,
		Provides:    provides,
		Environment: cfg.Environment,
	}

	appInfo := application.DefaultAppInfo()
	appInfo.SetName(cfg.AppName)

	// 6. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(env, appInfo, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(env, appInfo, logger), logger)

	handler := httphandler.ApplyMiddleware(mux, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("affirm started",
		"app_name", appInfo.Name(),
		"version", appInfo.Version(),
		"plugins", cfg.Deploy.Plugins,
	)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown with 10s drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
