// Package chunk splits normalized page text into overlapping token windows
// suitable for embedding and retrieval.
package chunk

import (
	"strings"
	"time"

	"github.com/docdex/docdex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docdex.Chunker = (*Splitter)(nil)

// Splitter implements docdex.Chunker with a sliding whitespace-token
// window. It is stateless and safe for concurrent use.
type Splitter struct{}

// NewSplitter creates a new Splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Chunk splits text into overlapping token windows.
//
// The effective window is max(TokensPerChunk, MinChunkTokens) and the
// effective overlap is capped at window-1, so the step is always at least
// one token. A trailing window shorter than MinChunkTokens is not emitted
// standalone: its unique suffix tokens are appended to the previous chunk
// instead, so no emitted chunk except possibly the first falls below the
// minimum. Empty input yields no chunks.
func (s *Splitter) Chunk(text string, opts docdex.ChunkOptions) []*docdex.Chunk {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	window := opts.TokensPerChunk
	if window <= 0 {
		window = docdex.DefaultTokensPerChunk
	}
	minTokens := opts.MinChunkTokens
	if minTokens <= 0 {
		minTokens = docdex.DefaultMinChunkTokens
	}
	if window < minTokens {
		window = minTokens
	}
	overlap := opts.OverlapTokens
	if overlap < 0 {
		overlap = 0
	}
	if overlap > window-1 {
		overlap = window - 1
	}
	step := window - overlap
	if step < 1 {
		step = 1
	}

	now := time.Now().UTC()
	var chunks []*docdex.Chunk

	for start := 0; start < len(tokens); start += step {
		end := start + window
		if end > len(tokens) {
			end = len(tokens)
		}
		windowTokens := tokens[start:end]

		if len(windowTokens) < minTokens && len(chunks) > 0 {
			mergeTail(chunks[len(chunks)-1], windowTokens, overlap)
			break
		}

		chunks = append(chunks, &docdex.Chunk{
			ID:          chunkID(),
			JobID:       opts.JobID,
			SourceURL:   opts.SourceURL,
			Position:    len(chunks),
			HeadingPath: opts.HeadingPath,
			Text:        strings.Join(windowTokens, " "),
			WordCount:   len(windowTokens),
			CharCount:   joinedLen(windowTokens),
			CreatedAt:   now,
		})

		if end == len(tokens) {
			break
		}
	}

	return chunks
}

// mergeTail appends the non-overlapping suffix of an undersized trailing
// window to the previous chunk and refreshes its counts.
func mergeTail(prev *docdex.Chunk, windowTokens []string, overlap int) {
	if overlap >= len(windowTokens) {
		return
	}
	suffix := windowTokens[overlap:]
	prev.Text = prev.Text + " " + strings.Join(suffix, " ")
	prev.WordCount += len(suffix)
	prev.CharCount = len(prev.Text)
}

func joinedLen(tokens []string) int {
	n := 0
	for _, t := range tokens {
		n += len(t)
	}
	if len(tokens) > 1 {
		n += len(tokens) - 1 // separating spaces
	}
	return n
}

// chunkID returns a short collision-resistant identifier.
func chunkID() string {
	return uuid.NewString()[:8]
}
