package infradocs

import "context"

// DocItem is one node of a package's documentation tree.
type DocItem struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Kind     EntryKind  `json:"type"`
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	Children []*DocItem `json:"children,omitempty"`
}

// IsDir reports whether the item is a directory.
func (i *DocItem) IsDir() bool {
	return i.Kind == KindDir
}

// DocsStructure is the documentation tree of one package.
type DocsStructure struct {
	Package Package    `json:"package"`
	Items   []*DocItem `json:"items"`
}

// Files returns all file items of the structure in tree order.
func (s *DocsStructure) Files() []*DocItem {
	return FlattenDocItems(s.Items)
}

// File returns the file item with the given slug, or nil.
func (s *DocsStructure) File(slug string) *DocItem {
	for _, item := range s.Files() {
		if item.Slug == slug {
			return item
		}
	}
	return nil
}

// FlattenDocItems returns the file items of a tree, depth-first in order.
func FlattenDocItems(items []*DocItem) []*DocItem {
	var out []*DocItem
	for _, item := range items {
		if item.Kind == KindFile {
			out = append(out, item)
		}
		if len(item.Children) > 0 {
			out = append(out, FlattenDocItems(item.Children)...)
		}
	}
	return out
}

// StructureService builds documentation trees.
type StructureService interface {
	// BuildStructure walks the docs directory of a source.
	// Failed subtrees are omitted rather than reported.
	BuildStructure(ctx context.Context, src Source) (*DocsStructure, error)

	// BuildAllStructures builds every configured source concurrently,
	// in package enumeration order.
	BuildAllStructures(ctx context.Context) ([]*DocsStructure, error)
}

// ContentService serves markdown for page routes.
type ContentService interface {
	// MainDocument returns the package's root document. Fetch failures are
	// replaced by the bundled fallback document.
	MainDocument(ctx context.Context, p Package) (string, error)

	// Document returns the docs/ file with the given slug. Slugs are
	// lower-cased, so the file path is resolved through the docs tree when
	// possible. Returns ENOTFOUND if it cannot be fetched.
	Document(ctx context.Context, p Package, slug string) (string, error)
}

// Renderer converts markdown to HTML for display.
type Renderer interface {
	// Render converts markdown to HTML. Relative document links are
	// rewritten into routes of the given package, and every heading
	// carries an id equal to Slugify of its text.
	Render(markdown string, p Package) (string, error)
}
