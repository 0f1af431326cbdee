package docs

import (
	"context"
	"slices"

	"github.com/aliikhatami94/infradocs"
	"golang.org/x/sync/errgroup"
)

// Ensure Searcher implements infradocs.SearchService at compile time.
var _ infradocs.SearchService = (*Searcher)(nil)

// Searcher scans every main document and every docs file for a query.
type Searcher struct {
	fetcher     infradocs.Fetcher
	catalog     *infradocs.Catalog
	structures  infradocs.StructureService
	options     infradocs.SearchOptions
	concurrency int
}

// SearchOption configures a Searcher.
type SearchOption func(*Searcher)

// WithSearchOptions sets the per-document match extraction options.
func WithSearchOptions(opts infradocs.SearchOptions) SearchOption {
	return func(s *Searcher) {
		s.options = opts
	}
}

// WithSearchConcurrency limits the number of documents fetched at once.
func WithSearchConcurrency(n int) SearchOption {
	return func(s *Searcher) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSearcher creates a Searcher.
func NewSearcher(fetcher infradocs.Fetcher, catalog *infradocs.Catalog, structures infradocs.StructureService, opts ...SearchOption) *Searcher {
	s := &Searcher{
		fetcher:     fetcher,
		catalog:     catalog,
		structures:  structures,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// searchTask is one document to fetch and scan.
type searchTask struct {
	src      infradocs.Source
	path     string
	href     string
	title    string
	fallback bool
}

// Search returns results ordered by descending match count. Ties keep
// task order: main documents in package order, then each package's files
// in tree order. A document that cannot be fetched contributes nothing,
// except main documents which are scanned from their bundled fallback.
func (s *Searcher) Search(ctx context.Context, query string) ([]*infradocs.SearchResult, error) {
	if infradocs.QueryTooShort(query) {
		return []*infradocs.SearchResult{}, nil
	}

	tasks := s.tasks(ctx)
	slots := make([]*infradocs.SearchResult, len(tasks))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, task := range tasks {
		g.Go(func() error {
			slots[i] = s.searchOne(ctx, task, query)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*infradocs.SearchResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}
	slices.SortStableFunc(results, func(a, b *infradocs.SearchResult) int {
		return len(b.Matches) - len(a.Matches)
	})
	return results, nil
}

func (s *Searcher) tasks(ctx context.Context) []searchTask {
	sources := s.catalog.Sources()

	var tasks []searchTask
	for _, src := range sources {
		tasks = append(tasks, searchTask{
			src:      src,
			path:     src.RootPath,
			href:     "/" + string(src.Package),
			fallback: true,
		})
	}

	// Without structures only the main documents are searched.
	structures, err := s.structures.BuildAllStructures(ctx)
	if err != nil {
		return tasks
	}
	for _, st := range structures {
		src, err := s.catalog.Lookup(st.Package)
		if err != nil {
			continue
		}
		for _, item := range st.Files() {
			tasks = append(tasks, searchTask{
				src:   src,
				path:  item.Path,
				href:  "/" + string(src.Package) + "/" + item.Slug,
				title: item.Title,
			})
		}
	}
	return tasks
}

func (s *Searcher) searchOne(ctx context.Context, task searchTask, query string) *infradocs.SearchResult {
	content, err := s.fetcher.FetchFile(ctx, task.src, task.path)
	if err != nil {
		if !task.fallback {
			return nil
		}
		fb, ok := infradocs.FallbackContent(task.src.Package)
		if !ok {
			return nil
		}
		content = fb
	}

	return infradocs.SearchDocumentContent(infradocs.SearchDocument{
		Package: task.src.Package,
		Content: content,
		Href:    task.href,
		Title:   task.title,
	}, query, s.options)
}
