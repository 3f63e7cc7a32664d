// Package d1 is a client for the Cloudflare D1 REST API, used by migration
// tooling to apply the embedded schema to a remote database.
package d1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// DefaultBaseURL is the Cloudflare API v4 root.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client talks to a single D1 database.
type Client struct {
	http       *http.Client
	baseURL    string
	accountID  string
	databaseID string
	token      string
}

// NewClient creates a Client against the public Cloudflare API. GET lookups
// revalidate through cache using ETags; a nil cache keeps entries in memory
// for the life of the process. Query POSTs are never cached.
func NewClient(accountID, databaseID, token string, cache httpcache.Cache) (*Client, error) {
	return NewClientWithHTTPClient(&http.Client{Timeout: 30 * time.Second}, DefaultBaseURL, accountID, databaseID, token, cache)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
// The given client's transport is wrapped with the httpcache layer.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, accountID, databaseID, token string, cache httpcache.Cache) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}

	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}
	transport := httpcache.NewTransport(cache)
	transport.Transport = httpClient.Transport

	wrapped := *httpClient
	wrapped.Transport = transport

	return &Client{
		http:       &wrapped,
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  accountID,
		databaseID: databaseID,
		token:      token,
	}, nil
}

// NewDiskCache returns a response cache persisted under dir, so ETag
// revalidation carries over between separate CLI runs.
func NewDiskCache(dir string) (httpcache.Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return diskcache.New(dir), nil
}

// DefaultCacheDir is <user cache dir>/affirm/d1.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache dir: %w", err)
	}
	return filepath.Join(base, "affirm", "d1"), nil
}

// ResponseInfo is one entry of the API's errors or messages arrays.
type ResponseInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is returned when the API answers with success=false or a non-2xx status.
type APIError struct {
	StatusCode int
	Errors     []ResponseInfo
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("d1 api: status %d", e.StatusCode)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, info := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%d: %s", info.Code, info.Message))
	}
	return fmt.Sprintf("d1 api: status %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

// envelope is the common Cloudflare API response wrapper.
type envelope struct {
	Success  bool            `json:"success"`
	Errors   []ResponseInfo  `json:"errors"`
	Messages []ResponseInfo  `json:"messages"`
	Result   json.RawMessage `json:"result"`
}

// QueryMeta carries execution statistics for one statement batch.
type QueryMeta struct {
	ChangedDB   bool    `json:"changed_db"`
	Changes     int64   `json:"changes"`
	Duration    float64 `json:"duration"`
	LastRowID   int64   `json:"last_row_id"`
	RowsRead    int64   `json:"rows_read"`
	RowsWritten int64   `json:"rows_written"`
}

// QueryResult is the outcome of one statement in a query request.
type QueryResult struct {
	Results []map[string]any `json:"results"`
	Success bool             `json:"success"`
	Meta    QueryMeta        `json:"meta"`
}

// DatabaseInfo describes the remote database.
type DatabaseInfo struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	NumTables int    `json:"num_tables"`
	FileSize  int64  `json:"file_size"`
	CreatedAt string `json:"created_at"`
}

type queryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params,omitempty"`
}

// Query executes sql (one or more statements) with positional params.
func (c *Client) Query(ctx context.Context, sql string, params ...any) ([]QueryResult, error) {
	body, err := json.Marshal(queryRequest{SQL: sql, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	var results []QueryResult
	if err := c.do(ctx, http.MethodPost, c.databasePath()+"/query", body, &results); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return results, nil
}

// DatabaseInfo fetches metadata about the bound database.
func (c *Client) DatabaseInfo(ctx context.Context) (*DatabaseInfo, error) {
	var info DatabaseInfo
	if err := c.do(ctx, http.MethodGet, c.databasePath(), nil, &info); err != nil {
		return nil, fmt.Errorf("database info: %w", err)
	}
	return &info, nil
}

func (c *Client) databasePath() string {
	return fmt.Sprintf("/accounts/%s/d1/database/%s", url.PathEscape(c.accountID), url.PathEscape(c.databaseID))
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Errors: env.Errors}
	}

	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}

	return nil
}
