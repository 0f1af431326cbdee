package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aliikhatami94/infradocs"
	main "github.com/aliikhatami94/infradocs/cmd/infradocs"
	"github.com/aliikhatami94/infradocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// githubFetcher serves README.md for ai-infra and a single docs file
// listed under docs/. Everything else is missing.
func githubFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFileFn: func(ctx context.Context, src infradocs.Source, path string) (string, error) {
			switch {
			case src.Package == infradocs.AIInfra && path == "README.md":
				return "# AI Infra\n\n## Agents\n\nAgents run tools in a loop.\n", nil
			case src.Package == infradocs.AIInfra && path == "docs/agents.md":
				return "# Agents\n\n## Tools\n\nAgents call tools.\n", nil
			}
			return "", infradocs.Errorf(infradocs.ENOTFOUND, "HTTP 404")
		},
		ListDirectoryFn: func(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
			if src.Package == infradocs.AIInfra && path == "docs" {
				return []infradocs.Entry{{Name: "agents.md", Path: "docs/agents.md", Kind: infradocs.KindFile}}, nil
			}
			return []infradocs.Entry{}, nil
		},
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := main.NewMain()

		err := m.Run(context.Background(), nil, strings.NewReader(""), stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "infradocs")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := main.NewMain()

		err := m.Run(context.Background(), []string{"help"}, strings.NewReader(""), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "serve")
		assert.Contains(t, stdout.String(), "search")
	})

	t.Run("search across main documents and docs files", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := main.NewMain()
		m.Fetcher = githubFetcher()

		err := m.Run(context.Background(), []string{"search", "tools"}, strings.NewReader(""), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "AI Infra (ai-infra) /ai-infra\n")
		assert.Contains(t, stdout.String(), "Agents (ai-infra) /ai-infra/agents\n")
		assert.Contains(t, stdout.String(), "/ai-infra/agents#tools")
	})

	t.Run("tree lists docs files", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := main.NewMain()
		m.Fetcher = githubFetcher()

		err := m.Run(context.Background(), []string{"tree"}, strings.NewReader(""), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t,
			"ai-infra\n  Agents  agents\n\nsvc-infra\n  (no documents)\n\nfin-infra\n  (no documents)\n",
			stdout.String())
	})

	t.Run("config file overrides sources", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "infradocs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources:\n  svc-infra:\n    branch: develop\n    docs: documentation\n"), 0o600))

		var mu sync.Mutex
		var listed []string
		m := main.NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFileFn: func(ctx context.Context, src infradocs.Source, path string) (string, error) {
				return "", infradocs.Errorf(infradocs.ENOTFOUND, "HTTP 404")
			},
			ListDirectoryFn: func(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
				mu.Lock()
				defer mu.Unlock()
				listed = append(listed, src.Branch+":"+path)
				return []infradocs.Entry{}, nil
			},
		}

		err := m.Run(context.Background(), []string{"--config", path, "tree", "svc-infra"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		require.NotNil(t, m.Config)
		assert.Equal(t, []string{"develop:documentation"}, listed)
	})

	t.Run("unknown command fails", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()

		err := m.Run(context.Background(), []string{"frobnicate"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}
