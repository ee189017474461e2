// Package memory provides the reference in-memory vector index with
// brute-force cosine similarity search.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.VectorIndex = (*Index)(nil)

type entry struct {
	chunk  *docdex.Chunk
	vector []float32
	seq    int // insertion order, used for stable tie-breaking
}

// Index is an in-memory vector index. It is safe for concurrent use;
// a single mutex serializes conflicting writes so ClearJob never races
// with AddChunks for the same job.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
	nextSeq   int
}

// NewIndex creates an empty Index. The embedding dimension is fixed by
// the first AddChunks call.
func NewIndex() *Index {
	return &Index{}
}

// AddChunks stores one document per chunk.
func (idx *Index) AddChunks(ctx context.Context, jobID string, chunks []*docdex.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return docdex.Errorf(docdex.EDIMENSION, "chunks (%d) and vectors (%d) must have equal length", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dimension == 0 {
		idx.dimension = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return docdex.Errorf(docdex.EDIMENSION, "vector %d has dimension %d, index expects %d", i, len(v), idx.dimension)
		}
	}

	for i, c := range chunks {
		stored := *c
		if stored.JobID == "" {
			stored.JobID = jobID
		}
		if err := stored.Validate(); err != nil {
			return err
		}
		idx.entries = append(idx.entries, entry{
			chunk:  &stored,
			vector: vectors[i],
			seq:    idx.nextSeq,
		})
		idx.nextSeq++
	}
	return nil
}

// Search returns the top limit matches by descending cosine similarity.
func (idx *Index) Search(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]docdex.SearchMatch, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.dimension == 0 {
		return nil, docdex.Errorf(docdex.ENOTINITIALIZED, "vector index is empty; add chunks before searching")
	}
	if len(query) != idx.dimension {
		return nil, docdex.Errorf(docdex.EDIMENSION, "query has dimension %d, index expects %d", len(query), idx.dimension)
	}
	if limit <= 0 {
		return []docdex.SearchMatch{}, nil
	}

	filter := jobFilter(jobIDs)

	type scored struct {
		entry
		score float32
	}
	candidates := make([]scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		if filter != nil && !filter[e.chunk.JobID] {
			continue
		}
		candidates = append(candidates, scored{entry: e, score: CosineSimilarity(query, e.vector)})
	}

	// Entries are already in insertion order, so a stable sort preserves
	// it across equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	matches := make([]docdex.SearchMatch, 0, limit)
	for _, c := range candidates[:limit] {
		matches = append(matches, docdex.SearchMatch{Chunk: c.chunk, Score: c.score})
	}
	return matches, nil
}

// ClearJob removes all documents for a job. Idempotent.
func (idx *Index) ClearJob(ctx context.Context, jobID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	kept := idx.entries[:0]
	for _, e := range idx.entries {
		if e.chunk.JobID != jobID {
			kept = append(kept, e)
		}
	}
	idx.entries = kept
	return nil
}

// Info returns document counts and the index dimension.
func (idx *Index) Info(ctx context.Context) (*docdex.IndexInfo, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	info := &docdex.IndexInfo{
		Documents: len(idx.entries),
		Dimension: idx.dimension,
		Jobs:      make(map[string]int),
	}
	for _, e := range idx.entries {
		info.Jobs[e.chunk.JobID]++
	}
	return info, nil
}

func jobFilter(jobIDs []string) map[string]bool {
	if len(jobIDs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		m[id] = true
	}
	return m
}

// CosineSimilarity computes the cosine similarity of two vectors.
// A zero-magnitude vector has similarity 0 against anything, never NaN.
// Accumulation is done in float64 for numeric stability.
func CosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
