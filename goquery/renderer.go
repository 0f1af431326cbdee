package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aliikhatami94/infradocs"
)

// Ensure Renderer implements infradocs.Renderer at compile time.
var _ infradocs.Renderer = (*Renderer)(nil)

// DefaultCodeLanguage labels code blocks that declare no language.
const DefaultCodeLanguage = "code"

// Renderer decorates the HTML produced by another Renderer: code blocks
// get a header with their language and a copy button, tables get a
// scrolling wrapper, and external links open in a new tab.
type Renderer struct {
	next infradocs.Renderer
}

// NewRenderer creates a Renderer wrapping next.
func NewRenderer(next infradocs.Renderer) *Renderer {
	return &Renderer{next: next}
}

// Render renders markdown with the wrapped renderer and decorates the result.
func (r *Renderer) Render(markdown string, p infradocs.Package) (string, error) {
	out, err := r.next.Render(markdown, p)
	if err != nil {
		return "", err
	}
	return Decorate(out)
}

// Decorate applies the documentation chrome to an HTML fragment.
func Decorate(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", infradocs.Errorf(infradocs.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		lang := CodeLanguage(pre.ChildrenFiltered("code"))
		pre.WrapHtml(`<div class="code-block"></div>`)
		pre.BeforeHtml(`<div class="code-block-header">` +
			`<span class="code-block-lang">` + html.EscapeString(lang) + `</span>` +
			`<button type="button" class="code-block-copy">Copy</button>` +
			`</div>`)
	})

	doc.Find("table").WrapHtml(`<div class="table-wrapper"></div>`)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if isExternalLink(href) {
			a.SetAttr("target", "_blank")
			a.SetAttr("rel", "noopener noreferrer")
		}
	})

	return doc.Find("body").Html()
}

// CodeLanguage returns the language named by a "language-*" class on sel,
// or DefaultCodeLanguage.
func CodeLanguage(sel *goquery.Selection) string {
	class, _ := sel.Attr("class")
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
			return lang
		}
	}
	return DefaultCodeLanguage
}

func isExternalLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
