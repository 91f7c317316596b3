// Package sheets aggregates registration counts from a published
// spreadsheet CSV export and caches them in memory with a TTL.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Published-sheet exports are modest; this bound just keeps a
// misconfigured URL from buffering arbitrary data.
const maxCSVBytes = 20 << 20

// Fetcher retrieves the raw CSV export. One call means one attempt:
// retry cadence is governed by the cache TTL, not by the fetcher.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPFetcher downloads the CSV over HTTP with a bounded timeout,
// following redirects (published sheet URLs answer 307/308).
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher builds a fetcher for the given export URL.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET and returns the body on HTTP 200,
// or an explicit error on network failure or any other status.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// Some sheet frontends refuse the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch csv: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCSVBytes))
	if err != nil {
		return nil, fmt.Errorf("read csv body: %w", err)
	}
	return data, nil
}
