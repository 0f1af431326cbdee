package main

import (
	"log/slog"

	"github.com/aliikhatami94/infradocs/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Run executes the mcp command, serving tools until stdin closes or the
// context is cancelled.
func (c *MCPCmd) Run(deps *Dependencies) error {
	s := mcp.NewServer(version, mcp.Services{
		Catalog:    deps.Catalog,
		Search:     deps.Search,
		Structures: deps.Structures,
		Content:    deps.Content,
	})

	stdio := server.NewStdioServer(s)
	if deps.Logger != nil {
		stdio.SetErrorLogger(slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError))
	}
	return stdio.Listen(deps.Ctx, deps.Stdin, deps.Stdout)
}
