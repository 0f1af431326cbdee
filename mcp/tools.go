// Package mcp exposes the documentation services as MCP tools.
package mcp

import (
	"context"
	"strings"

	"github.com/aliikhatami94/infradocs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Services are the documentation services backing the tools.
type Services struct {
	Catalog    *infradocs.Catalog
	Search     infradocs.SearchService
	Structures infradocs.StructureService
	Content    infradocs.ContentService
}

// NewServer creates an MCP server with all documentation tools registered.
func NewServer(version string, svc Services) *server.MCPServer {
	s := server.NewMCPServer(
		"infradocs",
		version,
		server.WithToolCapabilities(true),
	)
	RegisterTools(s, svc)
	return s
}

// RegisterTools adds the read-only documentation tools to s.
func RegisterTools(s *server.MCPServer, svc Services) {
	s.AddTool(searchTool(), searchHandler(svc.Search))
	s.AddTool(listTool(), listHandler(svc.Catalog, svc.Structures))
	s.AddTool(readTool(), readHandler(svc.Content))
}

// --- search_docs ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_docs",
		mcp.WithDescription("Search ai-infra, svc-infra and fin-infra documentation. Returns matching documents with section snippets."),
		mcp.WithString("query",
			mcp.Description("Search text, at least 2 characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(search infradocs.SearchService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if infradocs.QueryTooShort(query) {
			return toolError(infradocs.Errorf(infradocs.EINVALID, "query must be at least %d characters", infradocs.MinQueryLength))
		}

		results, err := search.Search(ctx, query)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		return mcp.NewToolResultText(infradocs.FormatResults(results)), nil
	}
}

// --- list_docs ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_docs",
		mcp.WithDescription("List the documentation tree. Slugs can be passed to read_doc."),
		mcp.WithString("package",
			mcp.Description("Package to list (ai-infra, svc-infra, fin-infra). Omit to list all."),
		),
	)
}

func listHandler(catalog *infradocs.Catalog, structures infradocs.StructureService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("package", "")

		var all []*infradocs.DocsStructure
		if name == "" {
			var err error
			if all, err = structures.BuildAllStructures(ctx); err != nil {
				return toolError(err)
			}
		} else {
			src, err := lookup(catalog, name)
			if err != nil {
				return toolError(err)
			}
			st, err := structures.BuildStructure(ctx, src)
			if err != nil {
				return toolError(err)
			}
			all = append(all, st)
		}

		parts := make([]string, len(all))
		for i, st := range all {
			parts[i] = infradocs.FormatStructure(st)
		}
		return mcp.NewToolResultText(strings.Join(parts, "\n")), nil
	}
}

// --- read_doc ---

func readTool() mcp.Tool {
	return mcp.NewTool("read_doc",
		mcp.WithDescription("Read a documentation page as markdown. Without a slug returns the package README."),
		mcp.WithString("package",
			mcp.Description("Package name (ai-infra, svc-infra, fin-infra)"),
			mcp.Required(),
		),
		mcp.WithString("slug",
			mcp.Description("Document slug from list_docs (e.g. guides/setup)"),
		),
	)
}

func readHandler(content infradocs.ContentService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := infradocs.ParsePackage(req.GetString("package", ""))
		if err != nil {
			return toolError(err)
		}

		slug := strings.Trim(req.GetString("slug", ""), "/")
		var md string
		if slug == "" {
			md, err = content.MainDocument(ctx, p)
		} else {
			md, err = content.Document(ctx, p, slug)
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(md), nil
	}
}

func lookup(catalog *infradocs.Catalog, name string) (infradocs.Source, error) {
	p, err := infradocs.ParsePackage(name)
	if err != nil {
		return infradocs.Source{}, err
	}
	return catalog.Lookup(p)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(infradocs.ErrorMessage(err)), nil
}
