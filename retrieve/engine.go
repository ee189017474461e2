// Package retrieve implements retrieval over the vector index: plain
// similarity search and the staged LLM pipeline with reranking, answer
// extraction, summarization, and result caching.
package retrieve

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/docdex/docdex"
	"golang.org/x/sync/errgroup"
)

// Retrieval defaults and thresholds.
const (
	// DefaultLimit is the result count when the caller passes none.
	DefaultLimit = 5

	// DefaultScoreThreshold filters out barely related matches. It is a
	// deliberately low bar: ranking is the reranker's job.
	DefaultScoreThreshold float32 = 0.1

	// DefaultLLMTimeout bounds each individual LLM call.
	DefaultLLMTimeout = 10 * time.Second

	// goodConfidence is the answer confidence at which the result set is
	// considered answered, enabling the poor-result post-filter.
	goodConfidence = 0.6

	// poorConfidenceFloor is the confidence below which results are dropped
	// once a good answer exists.
	poorConfidenceFloor = 0.2

	// Candidate inflation for reranking: fetch more than requested so the
	// reranker has material to reorder.
	candidateFactor = 4
	minCandidates   = 20
)

// Compile-time interface verification.
var _ docdex.RetrievalService = (*Engine)(nil)

// Engine implements docdex.RetrievalService. The Embedder and Index are
// required; the LLM capabilities are optional and individually probed, so
// a partially configured engine degrades instead of failing.
type Engine struct {
	Embedder  docdex.Embedder
	Index     docdex.VectorIndex
	Reranker  docdex.Reranker
	Answers   docdex.AnswerExtractor
	Summaries docdex.Summarizer

	// Threshold is the minimum similarity score for a match to be returned.
	Threshold float32

	// LLMTimeout bounds each rerank, answer, and summary call.
	LLMTimeout time.Duration

	cache *Cache
}

// NewEngine creates an Engine with default thresholds and cache sizing.
// LLM capabilities are attached by setting the exported fields.
func NewEngine(embedder docdex.Embedder, index docdex.VectorIndex) *Engine {
	return &Engine{
		Embedder:   embedder,
		Index:      index,
		Threshold:  DefaultScoreThreshold,
		LLMTimeout: DefaultLLMTimeout,
		cache:      NewCache(DefaultCacheCapacity, DefaultCacheTTL),
	}
}

// Retrieve performs a plain similarity search: embed the query, search the
// index, drop matches below the score threshold.
func (e *Engine) Retrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "query required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if e.Embedder == nil || !e.Embedder.IsAvailable() {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "embedder unavailable")
	}

	start := time.Now()
	vector, err := e.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	matches, err := e.Index.Search(ctx, vector, limit, jobIDs...)
	if err != nil {
		return nil, err
	}

	var results []*docdex.RetrievedChunk
	for _, match := range matches {
		if match.Score < e.Threshold {
			continue
		}
		results = append(results, &docdex.RetrievedChunk{
			Chunk: match.Chunk,
			Score: match.Score,
		})
	}

	return &docdex.RetrievalResult{
		Query:      query,
		Results:    results,
		TotalFound: len(results),
		SearchTime: time.Since(start),
	}, nil
}

// IntelligentRetrieve runs the full pipeline: cache lookup, inflated
// candidate search, rerank, concurrent per-chunk annotation, confidence
// post-filtering, and cache insertion. A pipeline error or panic degrades
// to the plain similarity result reshaped into the same schema, flagged
// Degraded, rather than failing the query.
func (e *Engine) IntelligentRetrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := CacheKey(query, limit, jobIDs)
	if cached, ok := e.cache.Get(key); ok {
		hit := *cached
		hit.FromCache = true
		return &hit, nil
	}

	candidates := candidateFactor * limit
	if candidates < minCandidates {
		candidates = minCandidates
	}
	base, err := e.Retrieve(ctx, query, candidates, jobIDs...)
	if err != nil {
		return nil, err
	}

	llmStart := time.Now()
	result, err := e.enrich(ctx, query, base, limit)
	if err != nil {
		result = e.reshape(base, limit)
		result.Degraded = true
		result.LLMTime = time.Since(llmStart)
		return result, nil
	}
	result.LLMTime = time.Since(llmStart)

	e.cache.Put(key, result)
	return result, nil
}

// enrich reranks candidates, keeps the top limit, and annotates them
// concurrently. Rerank failures abort enrichment; per-chunk annotation
// failures only lose their field. A recovered panic is reported as an
// EINTERNAL error so the caller can degrade.
func (e *Engine) enrich(ctx context.Context, query string, base *docdex.RetrievalResult, limit int) (result *docdex.RetrievalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = docdex.Errorf(docdex.EINTERNAL, "retrieval pipeline panic: %v", r)
		}
	}()

	selected := append([]*docdex.RetrievedChunk(nil), base.Results...)

	if e.Reranker != nil && e.Reranker.IsAvailable() && len(selected) > 1 {
		texts := make([]string, len(selected))
		for i, rc := range selected {
			texts[i] = rc.Chunk.Text
		}
		rctx, cancel := context.WithTimeout(ctx, e.llmTimeout())
		scores, rerr := e.Reranker.Rerank(rctx, query, texts)
		cancel()
		if rerr != nil {
			return nil, rerr
		}
		if len(scores) != len(selected) {
			return nil, docdex.Errorf(docdex.EINTERNAL, "reranker returned %d scores for %d candidates", len(scores), len(selected))
		}
		for i, rc := range selected {
			score := scores[i]
			rc.RerankScore = &score
		}
		sort.SliceStable(selected, func(i, j int) bool {
			return *selected[i].RerankScore > *selected[j].RerankScore
		})
	}

	if len(selected) > limit {
		selected = selected[:limit]
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, rc := range selected {
		rc := rc
		g.Go(func() (gerr error) {
			defer func() {
				if r := recover(); r != nil {
					gerr = docdex.Errorf(docdex.EINTERNAL, "annotation panic: %v", r)
				}
			}()
			e.annotate(gctx, query, rc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keep := selected
	if e.hasGoodAnswer(selected) {
		keep = keep[:0]
		for _, rc := range selected {
			if rc.Answer != nil && rc.Answer.Confidence < poorConfidenceFloor {
				continue
			}
			keep = append(keep, rc)
		}
	}

	return &docdex.RetrievalResult{
		Query:      query,
		Results:    keep,
		TotalFound: base.TotalFound,
		SearchTime: base.SearchTime,
	}, nil
}

// annotate attaches the answer span, summary, and code blocks to one
// result. Each LLM call has its own timeout and degrades to an absent
// field on failure.
func (e *Engine) annotate(ctx context.Context, query string, rc *docdex.RetrievedChunk) {
	if e.Answers != nil && e.Answers.IsAvailable() {
		actx, cancel := context.WithTimeout(ctx, e.llmTimeout())
		if answer, err := e.Answers.ExtractAnswer(actx, query, rc.Chunk.Text); err == nil {
			rc.Answer = answer
		}
		cancel()
	}
	if e.Summaries != nil && e.Summaries.IsAvailable() {
		sctx, cancel := context.WithTimeout(ctx, e.llmTimeout())
		if summary, err := e.Summaries.Summarize(sctx, rc.Chunk.Text); err == nil {
			rc.Summary = summary
		}
		cancel()
	}
	rc.CodeBlocks = docdex.ExtractCodeBlocks(rc.Chunk.Text)
}

// reshape truncates a plain similarity result to the requested limit and
// attaches locally computed code blocks. It is the degraded form of the
// intelligent result: same schema, no LLM fields.
func (e *Engine) reshape(base *docdex.RetrievalResult, limit int) *docdex.RetrievalResult {
	results := base.Results
	if len(results) > limit {
		results = results[:limit]
	}
	for _, rc := range results {
		// Partial annotations from a failed pipeline run are discarded so
		// the degraded result carries no half-applied LLM fields.
		rc.RerankScore = nil
		rc.Answer = nil
		rc.Summary = ""
		rc.CodeBlocks = docdex.ExtractCodeBlocks(rc.Chunk.Text)
	}
	return &docdex.RetrievalResult{
		Query:      base.Query,
		Results:    results,
		TotalFound: base.TotalFound,
		SearchTime: base.SearchTime,
	}
}

func (e *Engine) hasGoodAnswer(results []*docdex.RetrievedChunk) bool {
	for _, rc := range results {
		if rc.Answer != nil && rc.Answer.Confidence >= goodConfidence {
			return true
		}
	}
	return false
}

func (e *Engine) llmTimeout() time.Duration {
	if e.LLMTimeout > 0 {
		return e.LLMTimeout
	}
	return DefaultLLMTimeout
}

// ClearCache discards all cached query results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// CacheStats reports result-cache occupancy.
func (e *Engine) CacheStats() *docdex.CacheStats {
	return e.cache.Stats()
}
