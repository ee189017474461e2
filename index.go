package docdex

import "context"

// SearchMatch is a single similarity-search hit.
type SearchMatch struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// IndexInfo describes the contents of a vector index.
type IndexInfo struct {
	// Documents is the total number of indexed chunks.
	Documents int `json:"documents"`

	// Dimension is the embedding dimension, 0 until the first add.
	Dimension int `json:"dimension"`

	// Jobs maps job IDs to their indexed chunk counts.
	Jobs map[string]int `json:"jobs"`
}

// VectorIndex stores chunk embeddings and supports cosine-similarity search.
//
// Implementations must serialize conflicting writes: ClearJob must not race
// with AddChunks for the same job. The reference implementation is in-memory
// (memory.Index); persistent implementations (sqlite.Index) must preserve
// identical ranking and filter semantics.
type VectorIndex interface {
	// AddChunks stores one vector document per chunk. The chunks and
	// vectors slices must have equal length and every vector must match
	// the index dimension; violations fail with EDIMENSION.
	AddChunks(ctx context.Context, jobID string, chunks []*Chunk, vectors [][]float32) error

	// Search returns the top limit chunks by descending cosine similarity
	// to the query vector, optionally filtered to the given job IDs.
	// Ties are broken by insertion order (stable). A zero-magnitude vector
	// has similarity 0 against everything, never NaN.
	Search(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]SearchMatch, error)

	// ClearJob removes all documents for a job. Idempotent.
	ClearJob(ctx context.Context, jobID string) error

	// Info returns document counts and the index dimension.
	Info(ctx context.Context) (*IndexInfo, error)
}
