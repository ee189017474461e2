// Package slog provides log/slog decorators for docdex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingIndex implements docdex.VectorIndex.
var _ docdex.VectorIndex = (*LoggingIndex)(nil)

// LoggingIndex wraps a VectorIndex with timing and outcome logging.
type LoggingIndex struct {
	next   docdex.VectorIndex
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next docdex.VectorIndex, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// AddChunks delegates to the wrapped index, logging the batch size and duration.
func (l *LoggingIndex) AddChunks(ctx context.Context, jobID string, chunks []*docdex.Chunk, vectors [][]float32) error {
	begin := time.Now()
	err := l.next.AddChunks(ctx, jobID, chunks, vectors)
	if err != nil {
		l.logger.Error("index add",
			"job", jobID,
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}
	l.logger.Debug("index add",
		"job", jobID,
		"chunks", len(chunks),
		"duration", time.Since(begin),
	)
	return nil
}

// Search delegates to the wrapped index, logging the match count and duration.
func (l *LoggingIndex) Search(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]docdex.SearchMatch, error) {
	begin := time.Now()
	matches, err := l.next.Search(ctx, query, limit, jobIDs...)
	if err != nil {
		l.logger.Error("index search",
			"limit", limit,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	l.logger.Debug("index search",
		"limit", limit,
		"matches", len(matches),
		"duration", time.Since(begin),
	)
	return matches, nil
}

// ClearJob delegates to the wrapped index.
func (l *LoggingIndex) ClearJob(ctx context.Context, jobID string) error {
	err := l.next.ClearJob(ctx, jobID)
	if err != nil {
		l.logger.Error("index clear", "job", jobID, "error", err)
		return err
	}
	l.logger.Info("index clear", "job", jobID)
	return nil
}

// Info delegates to the wrapped index.
func (l *LoggingIndex) Info(ctx context.Context) (*docdex.IndexInfo, error) {
	return l.next.Info(ctx)
}
