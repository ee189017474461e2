package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of docdex.VectorIndex.
type VectorIndex struct {
	AddChunksFn func(ctx context.Context, jobID string, chunks []*docdex.Chunk, vectors [][]float32) error
	SearchFn    func(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]docdex.SearchMatch, error)
	ClearJobFn  func(ctx context.Context, jobID string) error
	InfoFn      func(ctx context.Context) (*docdex.IndexInfo, error)
}

func (v *VectorIndex) AddChunks(ctx context.Context, jobID string, chunks []*docdex.Chunk, vectors [][]float32) error {
	return v.AddChunksFn(ctx, jobID, chunks, vectors)
}

func (v *VectorIndex) Search(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]docdex.SearchMatch, error) {
	return v.SearchFn(ctx, query, limit, jobIDs...)
}

func (v *VectorIndex) ClearJob(ctx context.Context, jobID string) error {
	return v.ClearJobFn(ctx, jobID)
}

func (v *VectorIndex) Info(ctx context.Context) (*docdex.IndexInfo, error) {
	return v.InfoFn(ctx)
}
