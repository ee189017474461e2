package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.RetrievalService = (*RetrievalService)(nil)

// RetrievalService is a mock implementation of docdex.RetrievalService.
type RetrievalService struct {
	RetrieveFn            func(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error)
	IntelligentRetrieveFn func(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error)
	ClearCacheFn          func()
	CacheStatsFn          func() *docdex.CacheStats
}

func (s *RetrievalService) Retrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	return s.RetrieveFn(ctx, query, limit, jobIDs...)
}

func (s *RetrievalService) IntelligentRetrieve(ctx context.Context, query string, limit int, jobIDs ...string) (*docdex.RetrievalResult, error) {
	return s.IntelligentRetrieveFn(ctx, query, limit, jobIDs...)
}

func (s *RetrievalService) ClearCache() {
	if s.ClearCacheFn != nil {
		s.ClearCacheFn()
	}
}

func (s *RetrievalService) CacheStats() *docdex.CacheStats {
	return s.CacheStatsFn()
}
