package mock

import (
	"context"

	"github.com/aliikhatami94/infradocs"
)

var _ infradocs.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of infradocs.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string) ([]*infradocs.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string) ([]*infradocs.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
