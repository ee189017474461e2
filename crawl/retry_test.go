package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroDelays makes retry tests run instantly.
func zeroDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestFetchWithRetryDelays_succeeds_after_transient_failures(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(ctx context.Context, url string) (*docdex.FetchResult, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection reset")
		}
		return &docdex.FetchResult{Body: "ok", StatusCode: 200}, nil
	}

	result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, zeroDelays())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Body)
	assert.Equal(t, 3, attempts)
}

func TestFetchWithRetryDelays_returns_last_error_when_exhausted(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(ctx context.Context, url string) (*docdex.FetchResult, error) {
		attempts++
		return nil, errors.New("still down")
	}

	_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, zeroDelays())
	require.Error(t, err)
	assert.Equal(t, "still down", err.Error())
	assert.Equal(t, 4, attempts, "1 initial + 3 retries")
}

func TestFetchWithRetryDelays_stops_on_context_cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, url string) (*docdex.FetchResult, error) {
		cancel()
		return nil, errors.New("failed")
	}

	_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, []time.Duration{time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}
