package cache

import (
	"context"
	"slices"

	"github.com/aliikhatami94/infradocs"
	"golang.org/x/sync/singleflight"
)

// Cache kinds reported to observers.
const (
	KindFile    = "file"
	KindListing = "listing"
)

// Ensure Fetcher implements infradocs.Fetcher at compile time.
var _ infradocs.Fetcher = (*Fetcher)(nil)

// Observer is notified of every cache lookup.
type Observer func(kind string, hit bool)

// Fetcher wraps an infradocs.Fetcher with TTL caching. Concurrent misses for
// the same key share one outbound call, which is not cancelled when one of
// its callers gives up. Errors are never cached.
type Fetcher struct {
	next     infradocs.Fetcher
	files    infradocs.Cache[string]
	listings infradocs.Cache[[]infradocs.Entry]
	observer Observer
	group    singleflight.Group
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithObserver registers a callback for cache hits and misses.
func WithObserver(o Observer) FetcherOption {
	return func(f *Fetcher) {
		f.observer = o
	}
}

// NewFetcher creates a caching Fetcher. Files and listings are kept in
// separate caches so they can carry different TTLs.
func NewFetcher(next infradocs.Fetcher, files infradocs.Cache[string], listings infradocs.Cache[[]infradocs.Entry], opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		next:     next,
		files:    files,
		listings: listings,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchFile returns the cached file text or fetches it.
func (f *Fetcher) FetchFile(ctx context.Context, src infradocs.Source, path string) (string, error) {
	key := infradocs.NewCacheKey(src, path)
	if v, ok := f.files.Get(key); ok {
		f.observe(KindFile, true)
		return v, nil
	}
	f.observe(KindFile, false)

	// The shared fetch must outlive any single caller's cancellation; the
	// wrapped fetcher bounds it with its own timeout.
	ch := f.group.DoChan(KindFile+"|"+key.String(), func() (any, error) {
		// Another flight may have filled the entry since our lookup.
		if v, ok := f.files.Get(key); ok {
			return v, nil
		}
		content, err := f.next.FetchFile(context.WithoutCancel(ctx), src, path)
		if err != nil {
			return nil, err
		}
		f.files.Put(key, content)
		return content, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// ListDirectory returns the cached listing or fetches it.
func (f *Fetcher) ListDirectory(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
	key := infradocs.NewCacheKey(src, path)
	if v, ok := f.listings.Get(key); ok {
		f.observe(KindListing, true)
		return slices.Clone(v), nil
	}
	f.observe(KindListing, false)

	ch := f.group.DoChan(KindListing+"|"+key.String(), func() (any, error) {
		if v, ok := f.listings.Get(key); ok {
			return v, nil
		}
		entries, err := f.next.ListDirectory(context.WithoutCancel(ctx), src, path)
		if err != nil {
			return nil, err
		}
		entries = slices.Clone(entries)
		f.listings.Put(key, entries)
		return entries, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]infradocs.Entry)), nil
	}
}

func (f *Fetcher) observe(kind string, hit bool) {
	if f.observer != nil {
		f.observer(kind, hit)
	}
}
