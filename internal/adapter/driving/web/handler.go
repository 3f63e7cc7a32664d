// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/affirm/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/affirm/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/platform"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
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

// Home renders the landing page with the full HTML layout.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "", pages.Home(toHomeViewModel(h.env, h.appInfo)))
}

// Content renders the markdown page named by the {slug} path segment.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	page, err := loadContent(r.PathValue("slug"))
	if errors.Is(err, ErrContentNotFound) {
		h.render(w, r, http.StatusNotFound, "Not found", pages.NotFound(r.URL.Path))
		return
	}
	if err != nil {
		h.logger.Error("failed to load content", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, page.Title, pages.Content(page))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	layout := templates.Layout(toLayoutViewModel(title, h.env, h.appInfo), navLinks(r.URL.Path), body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
