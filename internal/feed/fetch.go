// Package feed imports external ICS calendar subscriptions: fetch the
// payload, parse VEVENTs, expand recurrences inside a horizon window, and
// replace the target calendar's imported occurrences in one transaction.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const fetchTimeout = 15 * time.Second

// maxFeedBytes caps the accepted payload size; a runaway feed should not
// exhaust memory.
const maxFeedBytes = 10 << 20

// FetchResult contains the outcome of fetching a single feed.
type FetchResult struct {
	Body        []byte
	NotModified bool
}

// conditional holds ETag/Last-Modified validators from the previous fetch
// of one URL.
type conditional struct {
	etag         string
	lastModified string
	body         []byte
}

// Fetcher retrieves ICS payloads over HTTP with conditional-request
// caching. Validators are kept per-URL for the fetcher's lifetime, which
// spans the periodic refresh loop of one dashboard session.
type Fetcher struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]conditional
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  make(map[string]conditional),
	}
}

// Fetch retrieves the feed at rawURL. On 304 the previously cached body
// is returned with NotModified set.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (FetchResult, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return FetchResult{}, fmt.Errorf("invalid feed url %q: %w", redactURL(rawURL), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar, */*;q=0.5")

	f.mu.Lock()
	prev, hasPrev := f.cache[rawURL]
	f.mu.Unlock()
	if hasPrev {
		if prev.etag != "" {
			req.Header.Set("If-None-Match", prev.etag)
		}
		if prev.lastModified != "" {
			req.Header.Set("If-Modified-Since", prev.lastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("fetching feed %s: %w", redactURL(rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && hasPrev {
		return FetchResult{Body: prev.body, NotModified: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return FetchResult{}, fmt.Errorf("fetching feed %s: unexpected status %s", redactURL(rawURL), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return FetchResult{}, fmt.Errorf("reading feed body: %w", err)
	}
	if len(body) > maxFeedBytes {
		return FetchResult{}, fmt.Errorf("feed %s exceeds %d byte limit", redactURL(rawURL), maxFeedBytes)
	}

	f.mu.Lock()
	f.cache[rawURL] = conditional{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		body:         body,
	}
	f.mu.Unlock()

	return FetchResult{Body: body}, nil
}

// redactURL strips query parameters before logging; ICS subscription URLs
// routinely embed access tokens.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
