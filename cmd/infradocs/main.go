package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/aliikhatami94/infradocs"
	"github.com/aliikhatami94/infradocs/cache"
	"github.com/aliikhatami94/infradocs/docs"
	"github.com/aliikhatami94/infradocs/goldmark"
	"github.com/aliikhatami94/infradocs/goquery"
	infrahttp "github.com/aliikhatami94/infradocs/http"
	"github.com/aliikhatami94/infradocs/prometheus"
	infraslog "github.com/aliikhatami94/infradocs/slog"
	"github.com/aliikhatami94/infradocs/yaml"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is the configuration file loaded by --config, if any.
	Config *yaml.Config

	// Fetcher replaces the GitHub client for end-to-end testing.
	Fetcher infradocs.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("infradocs"),
		kong.Description("Documentation site and search for the infra frameworks."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(yaml.Loader(func(c *yaml.Config) { m.Config = c })),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'infradocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var overrides map[infradocs.Package]infradocs.Source
	if m.Config != nil {
		overrides = m.Config.Sources()
	}
	catalog, err := infradocs.NewCatalog(overrides)
	if err != nil {
		return fmt.Errorf("invalid sources: %w", err)
	}

	m.wire(cli, catalog, deps)

	return kongCtx.Run(deps)
}

// wire builds the service graph. The cache sits outermost so metrics and
// logs see only real GitHub requests.
func (m *Main) wire(cli *CLI, catalog *infradocs.Catalog, deps *Dependencies) {
	// MCP owns stdout, so logs always go to stderr.
	deps.Logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	deps.Metrics = prometheus.NewMetrics(version)
	deps.Catalog = catalog

	var fetcher infradocs.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = infrahttp.NewFetcher(
			infrahttp.WithTimeout(cli.Timeout),
			infrahttp.WithToken(cli.GitHubToken),
			infrahttp.WithRateLimit(cli.APIRate, cli.APIBurst),
		)
	}
	fetcher = prometheus.NewFetcher(fetcher, deps.Metrics)
	if cli.Verbose {
		fetcher = infraslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	fetcher = cache.NewFetcher(fetcher,
		cache.New[string](cli.DocTTL),
		cache.New[[]infradocs.Entry](cli.ListingTTL),
		cache.WithObserver(deps.Metrics.ObserveCache),
	)

	var structures infradocs.StructureService = docs.NewStructureBuilder(fetcher, catalog,
		docs.WithStructureConcurrency(cli.Concurrency))
	if cli.Verbose {
		structures = infraslog.NewLoggingStructureService(structures, deps.Logger)
	}
	deps.Structures = structures

	var search infradocs.SearchService = docs.NewSearcher(fetcher, catalog, structures,
		docs.WithSearchConcurrency(cli.Concurrency))
	if cli.Verbose {
		search = infraslog.NewLoggingSearchService(search, deps.Logger)
	}
	deps.Search = search

	content := docs.NewContentService(fetcher, catalog, docs.WithStructureService(structures))
	content.Logger = deps.Logger
	deps.Content = content

	deps.Renderer = goquery.NewRenderer(goldmark.NewRenderer(catalog))
}
