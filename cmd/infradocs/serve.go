package main

import (
	"fmt"

	infrahttp "github.com/aliikhatami94/infradocs/http"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := infrahttp.NewServer()
	s.Addr = c.Addr
	s.Catalog = deps.Catalog
	s.SearchService = deps.Search
	s.StructureService = deps.Structures
	s.ContentService = deps.Content
	s.Renderer = deps.Renderer
	s.Logger = deps.Logger
	if deps.Metrics != nil {
		s.Metrics = deps.Metrics.Handler()
		s.Middleware = deps.Metrics.InstrumentHandler
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	return s.Close()
}
