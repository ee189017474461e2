package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Reranker = (*Reranker)(nil)

// Reranker is a mock implementation of docdex.Reranker.
type Reranker struct {
	RerankFn      func(ctx context.Context, query string, candidates []string) ([]float64, error)
	IsAvailableFn func() bool
}

func (r *Reranker) Rerank(ctx context.Context, query string, candidates []string) ([]float64, error) {
	return r.RerankFn(ctx, query, candidates)
}

func (r *Reranker) IsAvailable() bool {
	if r.IsAvailableFn == nil {
		return true
	}
	return r.IsAvailableFn()
}

var _ docdex.AnswerExtractor = (*AnswerExtractor)(nil)

// AnswerExtractor is a mock implementation of docdex.AnswerExtractor.
type AnswerExtractor struct {
	ExtractAnswerFn func(ctx context.Context, query, passage string) (*docdex.Answer, error)
	IsAvailableFn   func() bool
}

func (a *AnswerExtractor) ExtractAnswer(ctx context.Context, query, passage string) (*docdex.Answer, error) {
	return a.ExtractAnswerFn(ctx, query, passage)
}

func (a *AnswerExtractor) IsAvailable() bool {
	if a.IsAvailableFn == nil {
		return true
	}
	return a.IsAvailableFn()
}

var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of docdex.Summarizer.
type Summarizer struct {
	SummarizeFn   func(ctx context.Context, passage string) (string, error)
	IsAvailableFn func() bool
}

func (s *Summarizer) Summarize(ctx context.Context, passage string) (string, error) {
	return s.SummarizeFn(ctx, passage)
}

func (s *Summarizer) IsAvailable() bool {
	if s.IsAvailableFn == nil {
		return true
	}
	return s.IsAvailableFn()
}
