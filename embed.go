package docdex

import "context"

// Embedder converts text into fixed-length vectors.
// It is an external capability: callers must treat unavailability
// (IsAvailable returning false) as a normal condition, not an error.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// IsAvailable reports whether the capability can currently serve calls.
	IsAvailable() bool
}
