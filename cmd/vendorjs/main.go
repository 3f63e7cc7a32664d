// Command vendorjs downloads a pinned front-end asset into the embedded
// static directory so the server never loads scripts from a CDN at runtime.
// It runs from go:generate in the web package.
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// maxAssetBytes bounds a vendored file; htmx.min.js is about 50KB.
const maxAssetBytes = 4 << 20

func main() {
	url := flag.String("url", "", "asset URL to download")
	out := flag.String("out", "", "destination file")
	sum := flag.String("sha256", "", "expected hex SHA-256 of the asset (optional)")
	flag.Parse()

	if *url == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: vendorjs -url URL -out FILE [-sha256 HEX]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fetch(ctx, &http.Client{Timeout: 30 * time.Second}, *url, *out, *sum); err != nil {
		fmt.Fprintln(os.Stderr, "vendorjs:", err)
		os.Exit(1)
	}
}

// fetch downloads url and atomically replaces dest with the body. When
// wantSum is set the body must hash to it or dest is left untouched.
func fetch(ctx context.Context, client *http.Client, url, dest, wantSum string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	if len(body) > maxAssetBytes {
		return fmt.Errorf("%s exceeds %d bytes", url, maxAssetBytes)
	}
	if len(body) == 0 {
		return errors.New("empty response body")
	}

	if wantSum != "" {
		got := sha256.Sum256(body)
		if !strings.EqualFold(hex.EncodeToString(got[:]), wantSum) {
			return fmt.Errorf("checksum mismatch for %s: got %x", url, got)
		}
	}

	if err := atomic.WriteFile(dest, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
