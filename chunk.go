package docdex

import "time"

// Chunk is a bounded, overlap-linked slice of a page's extracted text.
// It is the unit of indexing and retrieval.
type Chunk struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	SourceURL   string    `json:"sourceUrl"`
	Position    int       `json:"position"`
	HeadingPath []string  `json:"headingPath,omitempty"`
	Text        string    `json:"text"`
	WordCount   int       `json:"wordCount"`
	CharCount   int       `json:"charCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.JobID == "" {
		return Errorf(EINVALID, "chunk job ID required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

// ChunkOptions configures how a page's text is split into chunks.
// All sizes are counted in whitespace-delimited tokens.
type ChunkOptions struct {
	TokensPerChunk int
	OverlapTokens  int
	MinChunkTokens int

	JobID       string
	SourceURL   string
	HeadingPath []string
}

// Chunker splits normalized text into overlapping token windows.
// Implementations must be pure: no shared state between calls.
type Chunker interface {
	Chunk(text string, opts ChunkOptions) []*Chunk
}
