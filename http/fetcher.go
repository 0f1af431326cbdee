// Package http provides the GitHub-backed implementation of
// infradocs.Fetcher and the HTTP server for the documentation site.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aliikhatami94/infradocs"
	"golang.org/x/time/rate"
)

// Default endpoints and limits.
const (
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultFetchTimeout is the default timeout for HTTP requests.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultAPIRate is the steady request rate allowed against the contents API.
	DefaultAPIRate  = 5.0
	DefaultAPIBurst = 5

	// contentsMediaType requests the structured JSON listing format.
	contentsMediaType = "application/vnd.github.v3+json"
)

// Ensure Fetcher implements infradocs.Fetcher at compile time.
var _ infradocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw files from raw.githubusercontent.com and directory
// listings from the GitHub contents API. Listing requests pass through a
// token bucket to stay under the API rate limit.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	rawBaseURL string
	apiBaseURL string
	token      string
	limiter    *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithToken sets a bearer token for the contents API. Authenticated
// requests get a much higher rate limit.
func WithToken(token string) Option {
	return func(f *Fetcher) {
		f.token = token
	}
}

// WithBaseURLs overrides the raw file and API hosts. Used by tests.
func WithBaseURLs(rawBaseURL, apiBaseURL string) Option {
	return func(f *Fetcher) {
		f.rawBaseURL = strings.TrimSuffix(rawBaseURL, "/")
		f.apiBaseURL = strings.TrimSuffix(apiBaseURL, "/")
	}
}

// WithRateLimit sets the contents API rate in requests per second.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// NewFetcher creates a new GitHub Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		rawBaseURL: DefaultRawBaseURL,
		apiBaseURL: DefaultAPIBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(DefaultAPIRate), DefaultAPIBurst),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchFile retrieves the raw text of a file.
func (f *Fetcher) FetchFile(ctx context.Context, src infradocs.Source, path string) (string, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s", f.rawBaseURL,
		url.PathEscape(src.Owner), url.PathEscape(src.Repo), url.PathEscape(src.Branch), escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", infradocs.Errorf(infradocs.ENOTFOUND, "file %s not found in %s/%s", path, src.Owner, src.Repo)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", infradocs.Errorf(infradocs.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// contentItem is one element of a contents API directory response.
type contentItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListDirectory retrieves the immediate children of a directory.
// A 404 yields an empty listing.
func (f *Fetcher) ListDirectory(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", f.apiBaseURL,
		url.PathEscape(src.Owner), url.PathEscape(src.Repo), escapePath(path), url.QueryEscape(src.Branch))

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", contentsMediaType)
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return []infradocs.Entry{}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, infradocs.Errorf(infradocs.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, u)
	}

	var items []contentItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, infradocs.Errorf(infradocs.EINVALID, "decode listing of %s: %v", path, err)
	}

	entries := make([]infradocs.Entry, 0, len(items))
	for _, item := range items {
		var kind infradocs.EntryKind
		switch item.Type {
		case "file", "symlink":
			kind = infradocs.KindFile
		case "dir":
			kind = infradocs.KindDir
		default:
			continue
		}
		entries = append(entries, infradocs.Entry{Name: item.Name, Path: item.Path, Kind: kind})
	}
	return entries, nil
}

// escapePath escapes each segment of a slash-separated repository path.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
