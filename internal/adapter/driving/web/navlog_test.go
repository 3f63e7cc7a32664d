package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func navLogRecorder(t *testing.T) (*bytes.Buffer, http.Handler, *int) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	return &buf, NavLog(logger, next), &calls
}

func countLines(s string) int {
	return strings.Count(s, "\n")
}

func TestNavLog_ClientNavigationLogsOnce(t *testing.T) {
	buf, handler, calls := navLogRecorder(t)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")
	req.Header.Set("HX-Current-URL", "http://localhost:8080/?tab=1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Equal(t, 1, countLines(out))
	assert.Contains(t, out, "msg=navigating")
	assert.Contains(t, out, "from=/")
	assert.Contains(t, out, "to=/about")
	assert.Equal(t, 1, *calls)
}

func TestNavLog_ServerRenderedLoadLogsNothing(t *testing.T) {
	buf, handler, calls := navLogRecorder(t)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/about", nil))

	assert.Empty(t, buf.String())
	assert.Equal(t, 1, *calls)
}

func TestNavLog_HXBoostedFalseLogsNothing(t *testing.T) {
	buf, handler, _ := navLogRecorder(t)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "false")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, buf.String())
}

func TestNavLog_UnboostedHTMXRequestLogsNothing(t *testing.T) {
	buf, handler, calls := navLogRecorder(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Current-URL", "http://localhost:8080/")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, buf.String())
	assert.Equal(t, 1, *calls)
}

func TestNavLog_OneLinePerNavigation(t *testing.T) {
	buf, handler, _ := navLogRecorder(t)

	for _, path := range []string{"/about", "/", "/getting-started"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Boosted", "true")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 3, countLines(buf.String()))
}

func TestNavigationSource(t *testing.T) {
	assert.Equal(t, "/docs", navigationSource("https://affirm.example/docs?x=1"))
	assert.Equal(t, "", navigationSource(""))
	assert.Equal(t, "::bad", navigationSource("::bad"))
}
