package web

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Page routes are wrapped in NavLog; static assets are served from the
// embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler, logger *slog.Logger) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.Handle("GET /{$}", NavLog(logger, http.HandlerFunc(h.Home)))
	mux.Handle("GET /{slug}", NavLog(logger, http.HandlerFunc(h.Content)))
}
