// Package docs implements the documentation services: the tree builder,
// the search fan-out and page content lookup. All remote I/O goes through
// an infradocs.Fetcher.
package docs

import (
	"context"
	"slices"

	"github.com/aliikhatami94/infradocs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultConcurrency is the number of concurrent fetches per fan-out level.
const DefaultConcurrency = 10

// Ensure StructureBuilder implements infradocs.StructureService at compile time.
var _ infradocs.StructureService = (*StructureBuilder)(nil)

// StructureBuilder walks remote docs directories into DocItem trees.
type StructureBuilder struct {
	fetcher     infradocs.Fetcher
	catalog     *infradocs.Catalog
	concurrency int
}

// StructureOption configures a StructureBuilder.
type StructureOption func(*StructureBuilder)

// WithStructureConcurrency limits concurrent listings per directory level.
func WithStructureConcurrency(n int) StructureOption {
	return func(b *StructureBuilder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewStructureBuilder creates a StructureBuilder over the sources of catalog.
func NewStructureBuilder(fetcher infradocs.Fetcher, catalog *infradocs.Catalog, opts ...StructureOption) *StructureBuilder {
	b := &StructureBuilder{
		fetcher:     fetcher,
		catalog:     catalog,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildStructure lists the docs directory of src and everything below it.
// A directory whose listing fails contributes no children and is pruned,
// so the only error returned is cancellation of ctx.
func (b *StructureBuilder) BuildStructure(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error) {
	items := b.walk(ctx, src, src.DocsPath)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*infradocs.DocItem{}
	}
	return &infradocs.DocsStructure{Package: src.Package, Items: items}, nil
}

// BuildAllStructures builds every catalog source concurrently. A source
// that fails yields an empty structure in its slot.
func (b *StructureBuilder) BuildAllStructures(ctx context.Context) ([]*infradocs.DocsStructure, error) {
	sources := b.catalog.Sources()
	out := make([]*infradocs.DocsStructure, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			s, err := b.BuildStructure(ctx, src)
			if err != nil {
				s = &infradocs.DocsStructure{Package: src.Package, Items: []*infradocs.DocItem{}}
			}
			out[i] = s
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// walk returns the sorted qualifying items under dir, or nil when there
// are none. Subdirectories are listed concurrently; each writes only its
// own slot so no collection is shared between goroutines.
func (b *StructureBuilder) walk(ctx context.Context, src infradocs.Source, dir string) []*infradocs.DocItem {
	entries, err := b.fetcher.ListDirectory(ctx, src, dir)
	if err != nil {
		return nil
	}

	slots := make([]*infradocs.DocItem, len(entries))

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)
	for i, e := range entries {
		switch e.Kind {
		case infradocs.KindFile:
			if !infradocs.IsMarkdown(e.Name) {
				continue
			}
			slots[i] = &infradocs.DocItem{
				Name:  e.Name,
				Path:  e.Path,
				Kind:  infradocs.KindFile,
				Slug:  infradocs.SlugFromPath(src.DocsPath, e.Path),
				Title: infradocs.TitleFromName(e.Name),
			}
		case infradocs.KindDir:
			g.Go(func() error {
				children := b.walk(ctx, src, e.Path)
				if len(children) == 0 {
					return nil
				}
				slots[i] = &infradocs.DocItem{
					Name:     e.Name,
					Path:     e.Path,
					Kind:     infradocs.KindDir,
					Slug:     infradocs.SlugFromPath(src.DocsPath, e.Path),
					Title:    infradocs.TitleFromName(e.Name),
					Children: children,
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	var items []*infradocs.DocItem
	for _, item := range slots {
		if item != nil {
			items = append(items, item)
		}
	}
	SortDocItems(items)
	return items
}

// SortDocItems orders one tree level: directories first, then by title
// using English collation.
func SortDocItems(items []*infradocs.DocItem) {
	// A Collator is not safe for concurrent use.
	c := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b *infradocs.DocItem) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return c.CompareString(a.Title, b.Title)
	})
}
