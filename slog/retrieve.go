package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingRetrieval implements docdex.RetrievalService.
var _ docdex.RetrievalService = (*LoggingRetrieval)(nil)

// LoggingRetrieval wraps a RetrievalService with query logging.
type LoggingRetrieval struct {
	next   docdex.RetrievalService
	logger *slog.Logger
}

// NewLoggingRetrieval creates a new LoggingRetrieval.
func NewLoggingRetrieval(next docdex.RetrievalService, logger *slog.Logger) *LoggingRetrieval {
	return &LoggingRetrieval{next: next, logger: logger}
}

// Retrieve delegates to the wrapped service, logging the result count and duration.
func (l *LoggingRetrieval) Retrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	begin := time.Now()
	result, err := l.next.Retrieve(ctx, query, limit, jobIDs...)
	if err != nil {
		l.logger.Error("retrieve",
			"query", query,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	l.logger.Info("retrieve",
		"query", query,
		"results", len(result.Results),
		"duration", time.Since(begin),
	)
	return result, nil
}

// IntelligentRetrieve delegates to the wrapped service, logging cache and
// degradation outcomes along with timings.
func (l *LoggingRetrieval) IntelligentRetrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	begin := time.Now()
	result, err := l.next.IntelligentRetrieve(ctx, query, limit, jobIDs...)
	if err != nil {
		l.logger.Error("intelligent retrieve",
			"query", query,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	l.logger.Info("intelligent retrieve",
		"query", query,
		"results", len(result.Results),
		"cached", result.FromCache,
		"degraded", result.Degraded,
		"searchTime", result.SearchTime,
		"llmTime", result.LLMTime,
		"duration", time.Since(begin),
	)
	return result, nil
}

// ClearCache delegates to the wrapped service.
func (l *LoggingRetrieval) ClearCache() {
	l.next.ClearCache()
	l.logger.Info("cache cleared")
}

// CacheStats delegates to the wrapped service.
func (l *LoggingRetrieval) CacheStats() *docdex.CacheStats {
	return l.next.CacheStats()
}
