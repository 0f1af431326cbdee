package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/aliikhatami94/infradocs"
	"github.com/aliikhatami94/infradocs/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Catalog    *infradocs.Catalog
	Search     infradocs.SearchService
	Structures infradocs.StructureService
	Content    infradocs.ContentService
	Renderer   infradocs.Renderer
	Metrics    *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      kong.ConfigFlag `help:"YAML file with flag values and per-package source overrides"`
	GitHubToken string          `name:"github-token" env:"GITHUB_TOKEN" help:"Token for the GitHub contents API"`
	DocTTL      time.Duration   `name:"doc-ttl" env:"INFRADOCS_DOC_TTL" default:"5m" help:"Cache lifetime of documents"`
	ListingTTL  time.Duration   `name:"listing-ttl" env:"INFRADOCS_LISTING_TTL" default:"1h" help:"Cache lifetime of directory listings"`
	Timeout     time.Duration   `env:"INFRADOCS_TIMEOUT" default:"10s" help:"Timeout of each GitHub request"`
	Concurrency int             `short:"c" env:"INFRADOCS_CONCURRENCY" default:"10" help:"Concurrent fetch limit"`
	APIRate     float64         `name:"api-rate" default:"5" help:"Contents API requests per second (0 disables limiting)"`
	APIBurst    int             `name:"api-burst" default:"5" help:"Contents API burst size"`
	Verbose     bool            `short:"v" help:"Log every GitHub request"`

	Serve  ServeCmd  `cmd:"" help:"Serve the documentation site"`
	Search SearchCmd `cmd:"" help:"Search all documentation"`
	Tree   TreeCmd   `cmd:"" help:"Print documentation trees"`
	MCP    MCPCmd    `cmd:"" name:"mcp" help:"Serve documentation tools over MCP stdio"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"INFRADOCS_ADDR" default:":8080" help:"Listen address"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search text, at least 2 characters"`
	JSON  bool   `help:"Print results as JSON"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Package string `arg:"" optional:"" help:"Package to print (ai-infra, svc-infra, fin-infra)"`
}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct{}
