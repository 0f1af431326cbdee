package prometheus_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aliikhatami94/infradocs"
	"github.com/aliikhatami94/infradocs/mock"
	infraprom "github.com/aliikhatami94/infradocs/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Isolation(t *testing.T) {
	t.Parallel()

	m1 := infraprom.NewMetrics("test")
	m2 := infraprom.NewMetrics("test")

	m1.ObserveCache("file", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m1.CacheLookupsTotal.WithLabelValues("file", "hit")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.CacheLookupsTotal.WithLabelValues("file", "hit")))
}

func TestMetrics_ObserveCache(t *testing.T) {
	t.Parallel()

	m := infraprom.NewMetrics("test")
	m.ObserveCache("listing", false)
	m.ObserveCache("listing", false)
	m.ObserveCache("listing", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("listing", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("listing", "hit")))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := infraprom.NewMetrics("1.2.3")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `infradocs_info{version="1.2.3"} 1`)
}

func TestMetrics_InstrumentHandler(t *testing.T) {
	t.Parallel()

	m := infraprom.NewMetrics("test")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{package}/{slug...}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.InstrumentHandler(mux)

	for _, path := range []string{"/ai-infra/a", "/svc-infra/b/c"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "GET /{package}/{slug...}", "404")))
}

func TestFetcher(t *testing.T) {
	t.Parallel()

	m := infraprom.NewMetrics("test")
	inner := &mock.Fetcher{
		FetchFileFn: func(ctx context.Context, src infradocs.Source, path string) (string, error) {
			switch path {
			case "README.md":
				return "# hi", nil
			case "docs/missing.md":
				return "", infradocs.Errorf(infradocs.ENOTFOUND, "not found")
			}
			return "", errors.New("reset")
		},
		ListDirectoryFn: func(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
			return []infradocs.Entry{}, nil
		},
	}
	f := infraprom.NewFetcher(inner, m)
	src := infradocs.DefaultSource(infradocs.AIInfra)
	ctx := context.Background()

	_, _ = f.FetchFile(ctx, src, "README.md")
	_, _ = f.FetchFile(ctx, src, "docs/missing.md")
	_, _ = f.FetchFile(ctx, src, "docs/broken.md")
	_, _ = f.ListDirectory(ctx, src, "docs")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("file", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("file", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("file", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("listing", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.FetchDurationSeconds))
}
