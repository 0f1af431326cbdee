package docs

import (
	"context"
	"log/slog"

	"github.com/aliikhatami94/infradocs"
)

// Ensure ContentService implements infradocs.ContentService at compile time.
var _ infradocs.ContentService = (*ContentService)(nil)

// ContentService resolves page routes to markdown.
type ContentService struct {
	fetcher    infradocs.Fetcher
	catalog    *infradocs.Catalog
	structures infradocs.StructureService

	// Logger receives a warning whenever a fallback document is served.
	// Optional.
	Logger *slog.Logger
}

// ContentOption configures a ContentService.
type ContentOption func(*ContentService)

// WithStructureService resolves document slugs to file paths through the
// docs tree, so files whose names are not lower case can be served.
func WithStructureService(structures infradocs.StructureService) ContentOption {
	return func(s *ContentService) {
		s.structures = structures
	}
}

// NewContentService creates a ContentService.
func NewContentService(fetcher infradocs.Fetcher, catalog *infradocs.Catalog, opts ...ContentOption) *ContentService {
	s := &ContentService{fetcher: fetcher, catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MainDocument returns the root document of p, or its bundled fallback
// when the fetch fails.
func (s *ContentService) MainDocument(ctx context.Context, p infradocs.Package) (string, error) {
	src, err := s.catalog.Lookup(p)
	if err != nil {
		return "", err
	}

	content, err := s.fetcher.FetchFile(ctx, src, src.RootPath)
	if err == nil {
		return content, nil
	}

	fb, ok := infradocs.FallbackContent(p)
	if !ok {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Warn("serving fallback document", "package", string(p), "err", err)
	}
	return fb, nil
}

// Document returns the docs file of p with the given slug.
// Returns ENOTFOUND if it cannot be fetched for any reason.
func (s *ContentService) Document(ctx context.Context, p infradocs.Package, slug string) (string, error) {
	src, err := s.catalog.Lookup(p)
	if err != nil {
		return "", err
	}

	content, err := s.fetcher.FetchFile(ctx, src, s.docPath(ctx, src, slug))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", infradocs.Errorf(infradocs.ENOTFOUND, "document %s/%s not found", p, slug)
	}
	return content, nil
}

// docPath returns the repository path of the file with slug. Without a
// matching tree item the path is derived from the slug itself.
func (s *ContentService) docPath(ctx context.Context, src infradocs.Source, slug string) string {
	if s.structures != nil {
		if st, err := s.structures.BuildStructure(ctx, src); err == nil {
			if item := st.File(slug); item != nil {
				return item.Path
			}
		}
	}
	return src.DocPath(slug)
}
