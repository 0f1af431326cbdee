package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aliikhatami94/infradocs"
	main "github.com/aliikhatami94/infradocs/cmd/infradocs"
	"github.com/aliikhatami94/infradocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCmd_Run(t *testing.T) {
	t.Parallel()

	structures := &mock.StructureService{
		BuildStructureFn: func(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error) {
			return &infradocs.DocsStructure{
				Package: src.Package,
				Items:   []*infradocs.DocItem{{Title: "Billing", Slug: "billing", Kind: infradocs.KindFile}},
			}, nil
		},
		BuildAllStructuresFn: func(ctx context.Context) ([]*infradocs.DocsStructure, error) {
			return []*infradocs.DocsStructure{
				{Package: infradocs.AIInfra, Items: []*infradocs.DocItem{{Title: "Agents", Slug: "agents", Kind: infradocs.KindFile}}},
				{Package: infradocs.SvcInfra, Items: []*infradocs.DocItem{}},
			}, nil
		},
	}

	t.Run("prints one package", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Catalog:    infradocs.DefaultCatalog(),
			Structures: structures,
		}

		err := (&main.TreeCmd{Package: "fin-infra"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "fin-infra\n  Billing  billing\n", stdout.String())
	})

	t.Run("prints all packages", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Catalog:    infradocs.DefaultCatalog(),
			Structures: structures,
		}

		err := (&main.TreeCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ai-infra\n  Agents  agents\n\nsvc-infra\n  (no documents)\n", stdout.String())
	})

	t.Run("rejects unknown package", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Catalog:    infradocs.DefaultCatalog(),
			Structures: structures,
		}

		err := (&main.TreeCmd{Package: "web-infra"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "unknown package")
	})
}
