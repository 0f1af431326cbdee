package mock

import "github.com/aliikhatami94/infradocs"

var _ infradocs.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of infradocs.Renderer.
type Renderer struct {
	RenderFn func(markdown string, p infradocs.Package) (string, error)
}

func (r *Renderer) Render(markdown string, p infradocs.Package) (string, error) {
	return r.RenderFn(markdown, p)
}
