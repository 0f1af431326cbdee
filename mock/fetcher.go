package mock

import (
	"context"

	"github.com/aliikhatami94/infradocs"
)

var _ infradocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of infradocs.Fetcher.
type Fetcher struct {
	FetchFileFn     func(ctx context.Context, src infradocs.Source, path string) (string, error)
	ListDirectoryFn func(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error)
}

func (f *Fetcher) FetchFile(ctx context.Context, src infradocs.Source, path string) (string, error) {
	return f.FetchFileFn(ctx, src, path)
}

func (f *Fetcher) ListDirectory(ctx context.Context, src infradocs.Source, path string) ([]infradocs.Entry, error) {
	return f.ListDirectoryFn(ctx, src, path)
}
