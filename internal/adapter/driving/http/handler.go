// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/domain/port/driven"
	"github.com/ericfisherdev/affirm/internal/format"
	"github.com/ericfisherdev/affirm/internal/platform"
)

const helloMessage = "hello from the server!"

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	env     *platform.Env
	appInfo *application.AppInfo
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(env *platform.Env, appInfo *application.AppInfo, logger *slog.Logger) *Handler {
	return &Handler{
		env:     env,
		appInfo: appInfo,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/hello", h.Hello)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/info", h.Info)
	mux.HandleFunc("GET /api/metadata/{key}", h.GetMetadata)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Hello returns the fixed greeting message.
func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HelloResponse{Message: format.Capitalize(helloMessage)})
}

// Health reports whether the bound database is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	db, err := h.env.UseDB()
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if err := db.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Time:        time.Now().UTC().Format(time.RFC3339),
		Environment: h.env.Environment,
	})
}

// Info returns the app's display metadata.
func (h *Handler) Info(w http.ResponseWriter, _ *http.Request) {
	appName := h.env.AppName()
	if appName == "" {
		appName = h.appInfo.Name()
	}

	writeJSON(w, http.StatusOK, InfoResponse{
		AppName:     appName,
		Version:     h.appInfo.Version(),
		Greeting:    h.appInfo.Greeting(),
		Environment: h.env.Environment,
	})
}

// GetMetadata returns a single metadata entry by key.
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	db, err := h.env.UseDB()
	if err != nil {
		h.logger.Error("failed to bind database", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	entry, err := db.Metadata.Get(r.Context(), key)
	if errors.Is(err, driven.ErrMetadataNotFound) {
		writeError(w, http.StatusNotFound, "metadata entry not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get metadata", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MetadataResponse{Key: entry.Key, Value: entry.Value})
}
