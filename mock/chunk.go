package mock

import "github.com/docdex/docdex"

var _ docdex.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of docdex.Chunker.
type Chunker struct {
	ChunkFn func(text string, opts docdex.ChunkOptions) []*docdex.Chunk
}

func (c *Chunker) Chunk(text string, opts docdex.ChunkOptions) []*docdex.Chunk {
	return c.ChunkFn(text, opts)
}
