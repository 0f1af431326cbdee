// Package slog provides logging decorators for the documentation services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aliikhatami94/infradocs"
)

// Ensure LoggingFetcher implements infradocs.Fetcher.
var _ infradocs.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of every remote read.
type LoggingFetcher struct {
	next   infradocs.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next infradocs.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchFile delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) FetchFile(ctx context.Context, src infradocs.Source, path string) (content string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch file",
			"key", infradocs.NewCacheKey(src, path).String(),
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchFile(ctx, src, path)
}

// ListDirectory delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) ListDirectory(ctx context.Context, src infradocs.Source, path string) (entries []infradocs.Entry, err error) {
	defer func(begin time.Time) {
		f.logger.Info("list directory",
			"key", infradocs.NewCacheKey(src, path).String(),
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.ListDirectory(ctx, src, path)
}
