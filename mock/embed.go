package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docdex.Embedder.
type Embedder struct {
	EmbedFn       func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn  func(ctx context.Context, texts []string) ([][]float32, error)
	IsAvailableFn func() bool
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatchFn(ctx, texts)
}

func (e *Embedder) IsAvailable() bool {
	if e.IsAvailableFn == nil {
		return true
	}
	return e.IsAvailableFn()
}
