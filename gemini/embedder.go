// Package gemini implements the LLM capabilities over Google Gemini:
// embeddings, reranking, answer extraction, and summarization. Every
// implementation treats a nil client as "unavailable" so the engine can be
// wired without credentials and degrade instead of failing.
package gemini

import (
	"context"

	"github.com/docdex/docdex"
	"google.golang.org/genai"
)

const (
	embedModel = "gemini-embedding-001"
	genModel   = "gemini-2.5-flash"
)

// NewClient creates a Gemini API client. An empty API key yields a nil
// client, which marks every capability unavailable rather than erroring.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Ensure Embedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*Embedder)(nil)

// Embedder implements docdex.Embedder using the Gemini embedding model.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder. A nil client is allowed and makes
// the embedder unavailable.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// IsAvailable reports whether embedding calls can be served.
func (e *Embedder) IsAvailable() bool {
	return e.client != nil
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input text, in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if !e.IsAvailable() {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "embedder unavailable")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	result, err := e.client.Models.EmbedContent(ctx, embedModel, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, embedding := range result.Embeddings {
		vectors[i] = embedding.Values
	}
	return vectors, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
