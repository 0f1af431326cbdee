package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aliikhatami94/infradocs"
	infrahttp "github.com/aliikhatami94/infradocs/http"
	"github.com/aliikhatami94/infradocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

// newTestServer returns a Server whose services all succeed with canned data.
func newTestServer(logs *bytes.Buffer) *infrahttp.Server {
	s := infrahttp.NewServer()
	s.Logger = slog.New(slog.NewTextHandler(logs, nil))
	s.SearchService = &mock.SearchService{
		SearchFn: func(ctx context.Context, query string) ([]*infradocs.SearchResult, error) {
			if infradocs.QueryTooShort(query) {
				return []*infradocs.SearchResult{}, nil
			}
			return []*infradocs.SearchResult{{
				Title:  "Intro",
				Source: infradocs.AIInfra,
				Href:   "/ai-infra",
				Matches: []*infradocs.SearchMatch{
					{Text: "Install Run pip install ai-infra to begin. Usage", Section: str("Install"), Anchor: str("install")},
					{Text: "Welcome to the ai-infra docs"},
				},
			}}, nil
		},
	}
	s.StructureService = &mock.StructureService{
		BuildStructureFn: func(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error) {
			return &infradocs.DocsStructure{
				Package: src.Package,
				Items: []*infradocs.DocItem{
					{Name: "guides", Path: "docs/guides", Kind: infradocs.KindDir, Slug: "guides", Title: "Guides", Children: []*infradocs.DocItem{
						{Name: "setup.md", Path: "docs/guides/setup.md", Kind: infradocs.KindFile, Slug: "guides/setup", Title: "Setup"},
						{Name: "Quick-Start.md", Path: "docs/guides/Quick-Start.md", Kind: infradocs.KindFile, Slug: "guides/quick-start", Title: "Quick Start"},
					}},
				},
			}, nil
		},
		BuildAllStructuresFn: func(ctx context.Context) ([]*infradocs.DocsStructure, error) {
			return []*infradocs.DocsStructure{
				{Package: infradocs.AIInfra, Items: []*infradocs.DocItem{}},
				{Package: infradocs.SvcInfra, Items: []*infradocs.DocItem{}},
				{Package: infradocs.FinInfra, Items: []*infradocs.DocItem{}},
			}, nil
		},
	}
	s.ContentService = &mock.ContentService{
		MainDocumentFn: func(ctx context.Context, p infradocs.Package) (string, error) {
			return "# " + string(p) + "\n\nOverview text.\n\n## Install\n", nil
		},
		DocumentFn: func(ctx context.Context, p infradocs.Package, slug string) (string, error) {
			switch slug {
			case "guides/setup":
				return "# Setup Guide\n\n## Requirements\n\nPython 3.11\n", nil
			case "guides/quick-start":
				return "No heading here.\n", nil
			}
			return "", infradocs.Errorf(infradocs.ENOTFOUND, "document %s/%s not found", p, slug)
		},
	}
	s.Renderer = &mock.Renderer{
		RenderFn: func(markdown string, p infradocs.Package) (string, error) {
			return "<div class=\"md\">" + markdown + "</div>", nil
		},
	}
	return s
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns results", func(t *testing.T) {
		t.Parallel()

		h := newTestServer(&bytes.Buffer{}).Handler()
		rec := get(t, h, "/api/search?q=ai-infra")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Results []struct {
				Title   string `json:"title"`
				Source  string `json:"source"`
				Href    string `json:"href"`
				Matches []struct {
					Text    string  `json:"text"`
					Section *string `json:"section"`
					Anchor  *string `json:"anchor"`
				} `json:"matches"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Results, 1)
		assert.Equal(t, "ai-infra", body.Results[0].Source)
		require.Len(t, body.Results[0].Matches, 2)
		assert.Equal(t, "install", *body.Results[0].Matches[0].Anchor)
		assert.Nil(t, body.Results[0].Matches[1].Section)
	})

	t.Run("serializes null section and anchor", func(t *testing.T) {
		t.Parallel()

		h := newTestServer(&bytes.Buffer{}).Handler()
		rec := get(t, h, "/api/search?q=ai-infra")

		assert.Contains(t, rec.Body.String(), `"section":null,"anchor":null`)
	})

	t.Run("short or missing query returns empty results array", func(t *testing.T) {
		t.Parallel()

		h := newTestServer(&bytes.Buffer{}).Handler()
		for _, target := range []string{"/api/search", "/api/search?q=", "/api/search?q=a"} {
			rec := get(t, h, target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
		}
	})

	t.Run("nil results serialize as empty array", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(&bytes.Buffer{})
		s.SearchService = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) ([]*infradocs.SearchResult, error) {
				return nil, nil
			},
		}
		rec := get(t, s.Handler(), "/api/search?q=nothing")

		assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
	})

	t.Run("search failure returns 500", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		s := newTestServer(&logs)
		s.SearchService = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) ([]*infradocs.SearchResult, error) {
				return nil, errors.New("boom")
			},
		}
		rec := get(t, s.Handler(), "/api/search?q=agents")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal error."}`, rec.Body.String())
		assert.Contains(t, logs.String(), "err=boom")
	})

	t.Run("honors If-None-Match", func(t *testing.T) {
		t.Parallel()

		h := newTestServer(&bytes.Buffer{}).Handler()
		first := get(t, h, "/api/search?q=ai-infra")
		etag := first.Header().Get("ETag")
		require.NotEmpty(t, etag)

		second := get(t, h, "/api/search?q=ai-infra", "If-None-Match", etag)
		assert.Equal(t, http.StatusNotModified, second.Code)
		assert.Empty(t, second.Body.String())

		third := get(t, h, "/api/search?q=ai-infra", "If-None-Match", `"0000000000000000"`)
		assert.Equal(t, http.StatusOK, third.Code)
	})
}

func TestServer_Structure(t *testing.T) {
	t.Parallel()

	t.Run("returns all structures", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/api/structure")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"structures":[
			{"package":"ai-infra","items":[]},
			{"package":"svc-infra","items":[]},
			{"package":"fin-infra","items":[]}
		]}`, rec.Body.String())
	})

	t.Run("returns one structure", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/api/structure/svc-infra")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"package":"svc-infra","items":[
			{"name":"guides","path":"docs/guides","type":"dir","slug":"guides","title":"Guides","children":[
				{"name":"setup.md","path":"docs/guides/setup.md","type":"file","slug":"guides/setup","title":"Setup"},
				{"name":"Quick-Start.md","path":"docs/guides/Quick-Start.md","type":"file","slug":"guides/quick-start","title":"Quick Start"}
			]}
		]}`, rec.Body.String())
	})

	t.Run("unknown package returns 404", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/api/structure/web-infra")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Pages(t *testing.T) {
	t.Parallel()

	t.Run("renders index", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<a href="/fin-infra">fin-infra</a>`)
	})

	t.Run("renders package overview", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/svc-infra")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<title>svc-infra</title>")
		assert.Contains(t, body, `<div class="md">Overview text.`)
		assert.NotContains(t, body, `<div class="md"># svc-infra`)
		assert.Contains(t, body, `href="https://github.com/aliikhatami94/svc-infra/blob/main/README.md"`)
		assert.Contains(t, body, `<a href="#install">Install</a>`)
		assert.Contains(t, body, `<a href="/svc-infra/guides/setup">Setup</a>`)
	})

	t.Run("renders document by multi-segment slug", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/ai-infra/guides/setup")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<h1>Setup Guide</h1>")
		assert.Contains(t, body, `<a href="#requirements">Requirements</a>`)
		assert.Contains(t, body, `href="https://github.com/aliikhatami94/ai-infra/blob/main/docs/guides/setup.md"`)
		assert.Contains(t, body, `aria-current="page"`)
	})

	t.Run("titles untitled document from slug", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/ai-infra/guides/quick-start")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>quick start</h1>")
	})

	t.Run("edit link uses file path from tree", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/ai-infra/guides/quick-start")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="https://github.com/aliikhatami94/ai-infra/blob/main/docs/guides/Quick-Start.md"`)
	})

	t.Run("missing document returns 404 page", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/ai-infra/does/not/exist")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "does not exist")
	})

	t.Run("unknown package returns 404 page", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/favicon.ico")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("page renders without navigation when tree fails", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(&bytes.Buffer{})
		s.StructureService = &mock.StructureService{
			BuildStructureFn: func(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error) {
				return nil, errors.New("rate limited")
			},
		}
		rec := get(t, s.Handler(), "/fin-infra")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "/fin-infra/guides/setup")
	})

	t.Run("renderer failure returns 500", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(&bytes.Buffer{})
		s.Renderer = &mock.Renderer{
			RenderFn: func(markdown string, p infradocs.Package) (string, error) {
				return "", errors.New("parse failure")
			},
		}
		rec := get(t, s.Handler(), "/ai-infra")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("assigns and logs request id", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		rec := get(t, newTestServer(&logs).Handler(), "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok\n", rec.Body.String())
		id := rec.Header().Get(infrahttp.RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Contains(t, logs.String(), "id="+id)
		assert.Contains(t, logs.String(), "path=/healthz")
		assert.Contains(t, logs.String(), "status=200")
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(&bytes.Buffer{}).Handler(), "/healthz", infrahttp.RequestIDHeader, "abc-123")

		assert.Equal(t, "abc-123", rec.Header().Get(infrahttp.RequestIDHeader))
	})

	t.Run("serves metrics handler and applies middleware", func(t *testing.T) {
		t.Parallel()

		var wrapped bool
		s := newTestServer(&bytes.Buffer{})
		s.Metrics = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		})
		s.Middleware = func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrapped = true
				next.ServeHTTP(w, r)
			})
		}
		rec := get(t, s.Handler(), "/metrics")

		assert.Equal(t, "metrics", rec.Body.String())
		assert.True(t, wrapped)
	})
}

func TestErrorStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want int
	}{
		{infradocs.ENOTFOUND, http.StatusNotFound},
		{infradocs.EINVALID, http.StatusBadRequest},
		{infradocs.EUNAVAILABLE, http.StatusServiceUnavailable},
		{infradocs.ECONFLICT, http.StatusConflict},
		{infradocs.EINTERNAL, http.StatusInternalServerError},
		{"EUNKNOWN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, infrahttp.ErrorStatusCode(tt.code))
		})
	}
}

func TestServer_Open(t *testing.T) {
	t.Parallel()

	s := newTestServer(&bytes.Buffer{})
	s.Addr = "127.0.0.1:0"
	require.NoError(t, s.Open())
	defer s.Close()

	resp, err := http.Get(s.URL() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(s.URL(), "http://127.0.0.1:"))
}
