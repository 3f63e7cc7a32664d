package web

import (
	"log/slog"
	"net/http"
	"net/url"
)

// Headers htmx sets on requests it issues from the browser.
const (
	hxBoostedHeader    = "HX-Boosted"
	hxCurrentURLHeader = "HX-Current-URL"
)

// NavLog logs one line per client-side navigation before the page handler
// runs. A navigation is client-side when it came from a boosted link or form
// (HX-Boosted: true); the page being left comes from HX-Current-URL. Other
// htmx requests and full page loads rendered on the server are not logged.
func NavLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(hxBoostedHeader) == "true" {
			logger.Info("navigating",
				"from", navigationSource(r.Header.Get(hxCurrentURLHeader)),
				"to", r.URL.Path,
			)
		}

		next.ServeHTTP(w, r)
	})
}

// navigationSource extracts the path from the HX-Current-URL header. The raw
// header value is returned when it cannot be parsed.
func navigationSource(current string) string {
	u, err := url.Parse(current)
	if err != nil || u.Path == "" {
		return current
	}
	return u.Path
}
