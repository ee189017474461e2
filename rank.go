package docdex

import "context"

// Answer is a precise answer span extracted from a chunk.
type Answer struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Reranker reorders similarity-search candidates using a more expensive
// relevance model. Best-effort: a failure in this capability must degrade,
// never fail the overall query.
type Reranker interface {
	// Rerank returns one relevance score per candidate, aligned by index.
	Rerank(ctx context.Context, query string, candidates []string) ([]float64, error)

	// IsAvailable reports whether the capability can currently serve calls.
	IsAvailable() bool
}

// AnswerExtractor extracts a precise answer span with a confidence score
// from a candidate passage. Best-effort.
type AnswerExtractor interface {
	ExtractAnswer(ctx context.Context, query, passage string) (*Answer, error)
	IsAvailable() bool
}

// Summarizer produces a short summary of a passage. Best-effort.
type Summarizer interface {
	Summarize(ctx context.Context, passage string) (string, error)
	IsAvailable() bool
}
