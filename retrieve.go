package docdex

import (
	"context"
	"time"
)

// RetrievedChunk is one ranked result of a retrieval query. The rerank
// score, answer, summary, and code blocks are optional: absent fields mean
// the corresponding LLM capability was disabled, unavailable, or timed out.
type RetrievedChunk struct {
	Chunk       *Chunk      `json:"chunk"`
	Score       float32     `json:"score"`
	RerankScore *float64    `json:"rerankScore,omitempty"`
	Answer      *Answer     `json:"answer,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	CodeBlocks  []CodeBlock `json:"codeBlocks,omitempty"`
}

// RetrievalResult is the per-query, ephemeral result of a retrieval.
// It is never persisted, only cached in memory.
type RetrievalResult struct {
	Query      string            `json:"query"`
	Results    []*RetrievedChunk `json:"results"`
	TotalFound int               `json:"totalFound"`

	SearchTime time.Duration `json:"searchTime"`
	LLMTime    time.Duration `json:"llmTime"`

	// FromCache is true when the result was served from the result cache
	// without recomputation.
	FromCache bool `json:"fromCache"`

	// Degraded is true when the LLM pipeline failed and the result was
	// reshaped from a plain similarity search.
	Degraded bool `json:"degraded"`
}

// CacheEntryStats summarizes one cached query result.
type CacheEntryStats struct {
	Key  string        `json:"key"`
	Hits int           `json:"hits"`
	Age  time.Duration `json:"age"`
}

// CacheStats reports result-cache occupancy.
type CacheStats struct {
	Size     int               `json:"size"`
	Capacity int               `json:"capacity"`
	Entries  []CacheEntryStats `json:"entries,omitempty"`
}

// RetrievalService answers queries against indexed documentation.
type RetrievalService interface {
	// Retrieve performs a plain similarity search: embed the query, search
	// the index, filter by the minimum score threshold.
	Retrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*RetrievalResult, error)

	// IntelligentRetrieve runs the full pipeline: cache lookup, inflated
	// candidate search, rerank, concurrent answer/summary/code extraction,
	// confidence post-filtering, and cache insertion. LLM failures degrade
	// to the plain Retrieve result rather than failing the query.
	IntelligentRetrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*RetrievalResult, error)

	// ClearCache discards all cached query results.
	ClearCache()

	// CacheStats reports cache occupancy and per-entry hit/age summaries.
	CacheStats() *CacheStats
}
