package mock

import (
	"context"

	"github.com/aliikhatami94/infradocs"
)

var _ infradocs.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of infradocs.ContentService.
type ContentService struct {
	MainDocumentFn func(ctx context.Context, p infradocs.Package) (string, error)
	DocumentFn     func(ctx context.Context, p infradocs.Package, slug string) (string, error)
}

func (s *ContentService) MainDocument(ctx context.Context, p infradocs.Package) (string, error) {
	return s.MainDocumentFn(ctx, p)
}

func (s *ContentService) Document(ctx context.Context, p infradocs.Package, slug string) (string, error) {
	return s.DocumentFn(ctx, p, slug)
}
