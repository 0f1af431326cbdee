package prometheus

import (
	"context"
	"time"

	"github.com/aliikhatami94/infradocs"
)

// Ensure Fetcher implements infradocs.Fetcher at compile time.
var _ infradocs.Fetcher = (*Fetcher)(nil)

// Fetch kinds used as metric labels.
const (
	KindFile    = "file"
	KindListing = "listing"
)

// Fetcher counts and times the calls of another Fetcher.
type Fetcher struct {
	next    infradocs.Fetcher
	metrics *Metrics
}

// NewFetcher creates an instrumented Fetcher.
func NewFetcher(next infradocs.Fetcher, metrics *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: metrics}
}

// FetchFile delegates to the wrapped fetcher and records the outcome.
func (f *Fetcher) FetchFile(ctx context.Context, src infradocs.Source, path string) (content string, err error) {
	defer f.observe(KindFile, time.Now(), &err)
	return f.next.FetchFile(ctx, src, path)
}

// ListDirectory delegates to the wrapped fetcher and records the outcome.
func (f *Fetcher) ListDirectory(ctx context.Context, src infradocs.Source, path string) (entries []infradocs.Entry, err error) {
	defer f.observe(KindListing, time.Now(), &err)
	return f.next.ListDirectory(ctx, src, path)
}

func (f *Fetcher) observe(kind string, begin time.Time, err *error) {
	f.metrics.FetchDurationSeconds.WithLabelValues(kind).Observe(time.Since(begin).Seconds())
	f.metrics.FetchTotal.WithLabelValues(kind, result(*err)).Inc()
}

// result classifies an error by its application code.
func result(err error) string {
	switch infradocs.ErrorCode(err) {
	case "":
		return "ok"
	case infradocs.ENOTFOUND:
		return "not_found"
	default:
		return "error"
	}
}
