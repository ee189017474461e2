package crawl_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL_strips_fragments(t *testing.T) {
	t.Parallel()

	norm, err := crawl.NormalizeURL("https://docs.example.com/guide#install")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/guide", norm)
}

func TestNormalizeURL_sorts_query_parameters(t *testing.T) {
	t.Parallel()

	a, err := crawl.NormalizeURL("https://docs.example.com/search?b=2&a=1")
	require.NoError(t, err)
	b, err := crawl.NormalizeURL("https://docs.example.com/search?a=1&b=2")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "https://docs.example.com/search?a=1&b=2", a)
}

func TestNormalizeURL_rejects_non_http_urls(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ftp://example.com/file", "mailto:a@b.c", "/relative/path", "://bad"} {
		_, err := crawl.NormalizeURL(raw)
		require.Error(t, err, raw)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err), raw)
	}
}
