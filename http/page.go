package http

import (
	"bytes"
	"html/template"
	"net/http"
	"path"
	"strings"

	"github.com/aliikhatami94/infradocs"
)

// navItem is a DocItem with its route resolved for templates.
type navItem struct {
	Title    string
	Href     string
	Active   bool
	Children []navItem
}

// pageData is the input to the document page template.
type pageData struct {
	Title    string
	Package  infradocs.Package
	Packages []infradocs.Package
	Nav      []navItem
	TOC      []infradocs.Heading
	Content  template.HTML
	EditURL  string
}

// indexData is the input to the index page template.
type indexData struct {
	Packages []infradocs.Package
}

// errorData is the input to the error page template.
type errorData struct {
	Title    string
	Packages []infradocs.Package
	Message  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index", indexData{Packages: infradocs.Packages()})
}

// handlePackage renders the package's main document. A failed fetch is
// served from the bundled fallback by the content service.
func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	src, err := s.lookup(r.PathValue("package"))
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	md, err := s.ContentService.MainDocument(r.Context(), src.Package)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	title, ok := infradocs.DocumentTitle(md)
	if !ok {
		title = string(src.Package)
	}
	s.renderDocument(w, r, src, md, title, src.BlobURL(src.RootPath), "")
}

// handleDocument renders a docs file. The multi-segment slug is joined back
// into a path below the source's docs directory.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	src, err := s.lookup(r.PathValue("package"))
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	slug := strings.Trim(r.PathValue("slug"), "/")
	if slug == "" {
		http.Redirect(w, r, "/"+string(src.Package), http.StatusMovedPermanently)
		return
	}

	md, err := s.ContentService.Document(r.Context(), src.Package, slug)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	title, ok := infradocs.DocumentTitle(md)
	if !ok {
		title = strings.ReplaceAll(path.Base(slug), "-", " ")
	}
	s.renderDocument(w, r, src, md, title, src.BlobURL(src.DocPath(slug)), slug)
}

func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, src infradocs.Source, md, title, editURL, slug string) {
	body := infradocs.StripLeadingHeading(md)
	html, err := s.Renderer.Render(body, src.Package)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	// The page still renders when the tree cannot be built.
	var nav []navItem
	if st, err := s.StructureService.BuildStructure(r.Context(), src); err == nil {
		nav = navItems(src.Package, st.Items, slug)
		if item := st.File(slug); slug != "" && item != nil {
			editURL = src.BlobURL(item.Path)
		}
	}

	s.renderPage(w, r, "document", pageData{
		Title:    title,
		Package:  src.Package,
		Packages: infradocs.Packages(),
		Nav:      nav,
		TOC:      infradocs.ExtractHeadings(body),
		Content:  template.HTML(html),
		EditURL:  editURL,
	})
}

func navItems(p infradocs.Package, items []*infradocs.DocItem, active string) []navItem {
	out := make([]navItem, 0, len(items))
	for _, item := range items {
		n := navItem{Title: item.Title}
		if item.IsDir() {
			n.Children = navItems(p, item.Children, active)
		} else {
			n.Href = "/" + string(p) + "/" + item.Slug
			n.Active = item.Slug == active
		}
		out = append(out, n)
	}
	return out
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.pageError(w, r, err)
		return
	}
	s.respond(w, r, "text/html; charset=utf-8", buf.Bytes())
}

// pageError renders an HTML error page with a status derived from err.
func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatusCode(infradocs.ErrorCode(err))
	s.logError(r, status, err)

	data := errorData{Title: "Error", Packages: infradocs.Packages(), Message: "Something went wrong."}
	if status == http.StatusNotFound {
		data.Title = "Not found"
		data.Message = "The page you are looking for does not exist."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = templates.ExecuteTemplate(w, "error", data)
}

var templates = template.Must(template.New("").Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
</head>
<body>
{{end}}

{{define "header"}}<header><a href="/">xinfras</a><nav>{{range .}} <a href="/{{.}}">{{.}}</a>{{end}}</nav></header>
{{end}}

{{define "nav"}}<ul>{{range .}}<li>{{if .Children}}<span>{{.Title}}</span>{{template "nav" .Children}}{{else}}<a href="{{.Href}}"{{if .Active}} aria-current="page"{{end}}>{{.Title}}</a>{{end}}</li>{{end}}</ul>{{end}}

{{define "index"}}{{template "head" "xinfras"}}{{template "header" .Packages}}<main>
<h1>Infrastructure frameworks</h1>
<ul>{{range .Packages}}<li><a href="/{{.}}">{{.}}</a></li>{{end}}</ul>
</main>
</body>
</html>
{{end}}

{{define "document"}}{{template "head" .Title}}{{template "header" .Packages}}<aside class="sidebar"><a href="/{{.Package}}">Overview</a>{{template "nav" .Nav}}</aside>
<main>
<h1>{{.Title}}</h1>
<article class="docs">{{.Content}}</article>
<a class="edit" href="{{.EditURL}}">Edit on GitHub</a>
</main>
{{if .TOC}}<aside class="toc"><p>On this page</p><ul>{{range .TOC}}<li class="toc-{{.Level}}"><a href="#{{.ID}}">{{.Title}}</a></li>{{end}}</ul></aside>{{end}}
</body>
</html>
{{end}}

{{define "error"}}{{template "head" .Title}}{{template "header" .Packages}}<main>
<h1>{{.Message}}</h1>
<a href="/">Back home</a>
</main>
</body>
</html>
{{end}}
`))
