// Package mock provides mock implementations of docdex interfaces for testing.
package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docdex.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docdex.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docdex.SeedExpander = (*SeedExpander)(nil)

// SeedExpander is a mock implementation of docdex.SeedExpander.
type SeedExpander struct {
	ExpandFn func(ctx context.Context, baseURL string, limit int) ([]string, error)
}

func (s *SeedExpander) Expand(ctx context.Context, baseURL string, limit int) ([]string, error) {
	return s.ExpandFn(ctx, baseURL, limit)
}
