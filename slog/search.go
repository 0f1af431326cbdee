package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aliikhatami94/infradocs"
)

// Ensure LoggingSearchService implements infradocs.SearchService.
var _ infradocs.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   infradocs.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next infradocs.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) Search(ctx context.Context, query string) (results []*infradocs.SearchResult, err error) {
	defer func(begin time.Time) {
		matches := 0
		for _, r := range results {
			matches += len(r.Matches)
		}
		s.logger.Info("search",
			"query", query,
			"results", len(results),
			"matches", matches,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
