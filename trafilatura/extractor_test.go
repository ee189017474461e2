package trafilatura_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Install Guide</title></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<main>
<h1>Installation</h1>
<p>Download the binary and place it on your PATH. This paragraph needs to be
long enough for content extraction heuristics to consider it main content
rather than boilerplate, so it keeps going for a couple of sentences.</p>
<h2>From source</h2>
<p>Clone the repository and run the build. This section also carries enough
prose to be recognized as article content by the extractor.</p>
</main>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractor_prefers_main_content_over_boilerplate(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()

	result, err := e.Extract(samplePage)
	require.NoError(t, err)

	assert.Contains(t, result.ContentHTML, "Download the binary")
	assert.NotContains(t, result.ContentHTML, "Copyright")
}

func TestExtractor_collects_top_level_headings(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()

	result, err := e.Extract(samplePage)
	require.NoError(t, err)

	assert.Contains(t, result.Headings, "Installation")
}

func TestExtractor_rejects_empty_input(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()

	_, err := e.Extract("")
	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}
