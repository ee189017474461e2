package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/docdex/docdex"
	dochttp "github.com/docdex/docdex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_sends_configured_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := dochttp.NewFetcher(dochttp.WithUserAgent("docdex-test/1.0"))
	defer f.Close()

	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "docdex-test/1.0", gotUA)
	assert.Equal(t, "text/html", result.ContentType, "charset parameter should be stripped")
	assert.Equal(t, "<html></html>", result.Body)
}

func TestFetcher_context_user_agent_overrides_configured(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := dochttp.NewFetcher(dochttp.WithUserAgent("docdex-test/1.0"))
	defer f.Close()

	ctx := docdex.WithUserAgent(context.Background(), "job-bot/2.0")
	_, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "job-bot/2.0", gotUA)

	// Without an override the configured user agent is used.
	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "docdex-test/1.0", gotUA)
}

func TestFetcher_non_2xx_is_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.Error(w, "not found", nethttp.StatusNotFound)
	}))
	defer srv.Close()

	f := dochttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcher_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	f := dochttp.NewFetcher()
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
