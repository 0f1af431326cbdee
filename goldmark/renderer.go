// Package goldmark renders documentation markdown to HTML.
package goldmark

import (
	"bytes"

	"github.com/aliikhatami94/infradocs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Ensure Renderer implements infradocs.Renderer at compile time.
var _ infradocs.Renderer = (*Renderer)(nil)

// packageKey carries the package being rendered into the AST transformer.
var packageKey = parser.NewContextKey()

// Renderer converts GitHub-flavored markdown to HTML. Relative document
// links become package routes and headings get Slugify ids.
type Renderer struct {
	catalog *infradocs.Catalog
	md      goldmark.Markdown
}

// NewRenderer creates a Renderer. Links are rewritten against the docs
// directory of each package's catalog source.
func NewRenderer(catalog *infradocs.Catalog) *Renderer {
	r := &Renderer{catalog: catalog}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&transformer{rewrite: r.rewriteLink}, 100)),
		),
		// READMEs embed raw HTML such as badges and centered logos.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return r
}

// Render converts markdown to HTML for package p.
func (r *Renderer) Render(markdown string, p infradocs.Package) (string, error) {
	pc := parser.NewContext()
	pc.Set(packageKey, p)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf, parser.WithContext(pc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) rewriteLink(href string, p infradocs.Package) string {
	if r.catalog != nil {
		if src, err := r.catalog.Lookup(p); err == nil {
			return src.RewriteLink(href)
		}
	}
	return infradocs.RewriteLink(href, p)
}

// transformer rewrites link destinations and assigns heading ids.
type transformer struct {
	rewrite func(href string, p infradocs.Package) string
}

func (t *transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	p, _ := pc.Get(packageKey).(infradocs.Package)
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Link:
			n.Destination = []byte(t.rewrite(string(n.Destination), p))
		case *ast.Heading:
			n.SetAttributeString("id", []byte(infradocs.Slugify(infradocs.HeadingText(rawText(n, source)))))
		}
		return ast.WalkContinue, nil
	})
}

// rawText returns the unparsed source of a block's lines, so link
// destinations and code spans count towards the id as they do in search
// anchors and the table of contents.
func rawText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			buf.WriteByte(' ')
		}
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
