package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/docdex/docdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_spaces_requests_within_a_domain(t *testing.T) {
	t.Parallel()

	d := crawl.NewDomainLimiter(100) // 10ms between requests

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, d.Wait(ctx, "example.com"))
	require.NoError(t, d.Wait(ctx, "example.com"))
	require.NoError(t, d.Wait(ctx, "example.com"))

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDomainLimiter_domains_do_not_share_a_bucket(t *testing.T) {
	t.Parallel()

	d := crawl.NewDomainLimiter(1) // 1 rps would block a shared bucket

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, d.Wait(ctx, "a.example.com"))
	require.NoError(t, d.Wait(ctx, "b.example.com"))
	require.NoError(t, d.Wait(ctx, "c.example.com"))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDomainLimiter_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	d := crawl.NewDomainLimiter(0.001)

	ctx := context.Background()
	require.NoError(t, d.Wait(ctx, "example.com")) // consumes the burst

	cancelled, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.Error(t, d.Wait(cancelled, "example.com"))
}
