package infradocs

import (
	"fmt"
	"strings"
)

// Package identifies one of the documented frameworks.
type Package string

// Documented packages, in enumeration order.
const (
	AIInfra  Package = "ai-infra"
	SvcInfra Package = "svc-infra"
	FinInfra Package = "fin-infra"
)

// Packages returns all packages in enumeration order.
// Search results with equal match counts keep this order.
func Packages() []Package {
	return []Package{AIInfra, SvcInfra, FinInfra}
}

// Valid reports whether p is one of the documented packages.
func (p Package) Valid() bool {
	switch p {
	case AIInfra, SvcInfra, FinInfra:
		return true
	}
	return false
}

// ParsePackage returns the package named s.
// Returns EINVALID if s is not a documented package.
func ParsePackage(s string) (Package, error) {
	p := Package(s)
	if !p.Valid() {
		return "", Errorf(EINVALID, "unknown package %q", s)
	}
	return p, nil
}

// Default locations inside every source repository.
const (
	DefaultOwner    = "aliikhatami94"
	DefaultBranch   = "main"
	DefaultRootPath = "README.md"
	DefaultDocsPath = "docs"
)

// Source describes where a package's documentation lives on GitHub.
type Source struct {
	Package  Package `json:"package" yaml:"-"`
	Owner    string  `json:"owner" yaml:"owner"`
	Repo     string  `json:"repo" yaml:"repo"`
	Branch   string  `json:"branch" yaml:"branch"`
	RootPath string  `json:"rootPath" yaml:"path"`
	DocsPath string  `json:"docsPath" yaml:"docs"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if !s.Package.Valid() {
		return Errorf(EINVALID, "unknown package %q", s.Package)
	}
	if s.Owner == "" {
		return Errorf(EINVALID, "source %s owner required", s.Package)
	}
	if s.Repo == "" {
		return Errorf(EINVALID, "source %s repo required", s.Package)
	}
	if s.Branch == "" {
		return Errorf(EINVALID, "source %s branch required", s.Package)
	}
	if s.RootPath == "" {
		return Errorf(EINVALID, "source %s root document path required", s.Package)
	}
	return nil
}

// DocPath returns the repository path of the document with the given slug.
func (s Source) DocPath(slug string) string {
	slug = strings.Trim(slug, "/")
	if s.DocsPath == "" {
		return slug + MarkdownExt
	}
	return strings.TrimSuffix(s.DocsPath, "/") + "/" + slug + MarkdownExt
}

// BlobURL returns the GitHub web URL of a file in the source repository.
func (s Source) BlobURL(path string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", s.Owner, s.Repo, s.Branch, strings.TrimPrefix(path, "/"))
}

// DefaultSource returns the default source for a package.
func DefaultSource(p Package) Source {
	return Source{
		Package:  p,
		Owner:    DefaultOwner,
		Repo:     string(p),
		Branch:   DefaultBranch,
		RootPath: DefaultRootPath,
		DocsPath: DefaultDocsPath,
	}
}

// Catalog is the immutable set of configured sources, resolved once at startup.
type Catalog struct {
	sources []Source
}

// NewCatalog builds a catalog with one source per package. Overrides replace
// non-empty fields of the default source for their package.
func NewCatalog(overrides map[Package]Source) (*Catalog, error) {
	c := &Catalog{}
	for _, p := range Packages() {
		src := DefaultSource(p)
		if o, ok := overrides[p]; ok {
			mergeSource(&src, o)
		}
		if err := src.Validate(); err != nil {
			return nil, err
		}
		c.sources = append(c.sources, src)
	}
	for p := range overrides {
		if !p.Valid() {
			return nil, Errorf(EINVALID, "unknown package %q", p)
		}
	}
	return c, nil
}

// DefaultCatalog returns a catalog of default sources.
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(nil)
	return c
}

func mergeSource(dst *Source, o Source) {
	if o.Owner != "" {
		dst.Owner = o.Owner
	}
	if o.Repo != "" {
		dst.Repo = o.Repo
	}
	if o.Branch != "" {
		dst.Branch = o.Branch
	}
	if o.RootPath != "" {
		dst.RootPath = o.RootPath
	}
	if o.DocsPath != "" {
		dst.DocsPath = o.DocsPath
	}
}

// Sources returns all sources in package enumeration order.
func (c *Catalog) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Lookup returns the source for a package.
// Returns ENOTFOUND if the package is not configured.
func (c *Catalog) Lookup(p Package) (Source, error) {
	for _, s := range c.sources {
		if s.Package == p {
			return s, nil
		}
	}
	return Source{}, Errorf(ENOTFOUND, "package %q not found", p)
}
