package chunk_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("t%d", i+1)
	}
	return strings.Join(parts, " ")
}

func TestSplitter_empty_input_yields_no_chunks(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()

	assert.Empty(t, s.Chunk("", docdex.ChunkOptions{TokensPerChunk: 10}))
	assert.Empty(t, s.Chunk("   \n\t  ", docdex.ChunkOptions{TokensPerChunk: 10}))
}

func TestSplitter_adjacent_chunks_share_overlap_tokens(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()
	opts := docdex.ChunkOptions{
		TokensPerChunk: 10,
		OverlapTokens:  3,
		MinChunkTokens: 5,
		JobID:          "job-1",
	}

	chunks := s.Chunk(tokens(24), opts)
	require.Len(t, chunks, 3)

	for i := 0; i < len(chunks)-1; i++ {
		cur := strings.Fields(chunks[i].Text)
		next := strings.Fields(chunks[i+1].Text)
		assert.Equal(t, cur[len(cur)-3:], next[:3],
			"last 3 tokens of chunk %d should open chunk %d", i, i+1)
	}
}

func TestSplitter_undersized_tail_merges_into_previous_chunk(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()
	opts := docdex.ChunkOptions{
		TokensPerChunk: 10,
		OverlapTokens:  3,
		MinChunkTokens: 5,
	}

	// Step is 7, so 25 tokens produce windows at 0, 7, 14, and a 4-token
	// window at 21 that must merge instead of being emitted.
	chunks := s.Chunk(tokens(25), opts)
	require.Len(t, chunks, 3)

	last := chunks[len(chunks)-1]
	assert.Equal(t, 11, last.WordCount, "merged tail adds its unique suffix token")
	assert.True(t, strings.HasSuffix(last.Text, "t25"))
	assert.Equal(t, len(last.Text), last.CharCount)

	for i, c := range chunks {
		assert.GreaterOrEqual(t, c.WordCount, 5, "chunk %d below minimum", i)
	}
}

func TestSplitter_whole_document_shorter_than_minimum_is_single_chunk(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()
	opts := docdex.ChunkOptions{
		TokensPerChunk: 100,
		OverlapTokens:  10,
		MinChunkTokens: 20,
	}

	chunks := s.Chunk("only three tokens", opts)
	require.Len(t, chunks, 1)
	assert.Equal(t, "only three tokens", chunks[0].Text)
	assert.Equal(t, 3, chunks[0].WordCount)
}

func TestSplitter_normalizes_whitespace(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()

	chunks := s.Chunk("a\tb\r\nc   d\n", docdex.ChunkOptions{TokensPerChunk: 10})
	require.Len(t, chunks, 1)
	assert.Equal(t, "a b c d", chunks[0].Text)
}

func TestSplitter_overlap_capped_below_window(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()
	opts := docdex.ChunkOptions{
		TokensPerChunk: 5,
		OverlapTokens:  50, // larger than the window; step must stay >= 1
		MinChunkTokens: 2,
	}

	chunks := s.Chunk(tokens(8), opts)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.WordCount, 8)
	}
}

func TestSplitter_assigns_unique_ids_and_positions(t *testing.T) {
	t.Parallel()

	s := chunk.NewSplitter()
	opts := docdex.ChunkOptions{
		TokensPerChunk: 10,
		OverlapTokens:  2,
		MinChunkTokens: 4,
		JobID:          "job-7",
		SourceURL:      "https://docs.example.com/guide",
		HeadingPath:    []string{"Guide", "Install"},
	}

	chunks := s.Chunk(tokens(40), opts)
	require.Greater(t, len(chunks), 1)

	seen := make(map[string]bool)
	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, "job-7", c.JobID)
		assert.Equal(t, "https://docs.example.com/guide", c.SourceURL)
		assert.Equal(t, []string{"Guide", "Install"}, c.HeadingPath)
		assert.False(t, seen[c.ID], "duplicate chunk id %q", c.ID)
		seen[c.ID] = true
	}
}
