package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docdex/docdex"
	"google.golang.org/genai"
)

// Compile-time interface verification.
var (
	_ docdex.Reranker        = (*Reranker)(nil)
	_ docdex.AnswerExtractor = (*AnswerExtractor)(nil)
	_ docdex.Summarizer      = (*Summarizer)(nil)
)

// generate runs one GenerateContent call and returns the response text.
func generate(ctx context.Context, client *genai.Client, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := client.Models.GenerateContent(ctx, genModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docdex.Errorf(docdex.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// scoringConfig returns the low-temperature config used for scoring calls.
func scoringConfig(instruction string) *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temp,
	}
}

// StripFences removes a wrapping markdown code fence from model output.
// Models often wrap JSON answers in fences regardless of instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Reranker implements docdex.Reranker using Gemini.
type Reranker struct {
	client *genai.Client
}

// NewReranker creates a new Reranker. A nil client is allowed and makes
// the capability unavailable.
func NewReranker(client *genai.Client) *Reranker {
	return &Reranker{client: client}
}

// IsAvailable reports whether rerank calls can be served.
func (r *Reranker) IsAvailable() bool {
	return r.client != nil
}

// Rerank scores each candidate passage for relevance to the query.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if !r.IsAvailable() {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "reranker unavailable")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	text, err := generate(ctx, r.client, BuildRerankPrompt(query, candidates),
		scoringConfig("You are a relevance judge for documentation search. Respond with JSON only."))
	if err != nil {
		return nil, err
	}
	return ParseScores(text, len(candidates))
}

// BuildRerankPrompt builds the rerank prompt: numbered passages followed by
// the query and the required output shape.
func BuildRerankPrompt(query string, candidates []string) string {
	var sb strings.Builder
	sb.WriteString("<passages>\n")
	for i, candidate := range candidates {
		fmt.Fprintf(&sb, "<passage index=\"%d\">\n%s\n</passage>\n", i+1, candidate)
	}
	sb.WriteString("</passages>\n\n")
	fmt.Fprintf(&sb, "Query: %s\n\n", query)
	fmt.Fprintf(&sb, "Score each passage's relevance to the query from 0.0 to 1.0. Respond with a JSON array of %d numbers in passage order, nothing else.", len(candidates))
	return sb.String()
}

// ParseScores parses a JSON array of n relevance scores from model output.
func ParseScores(text string, n int) ([]float64, error) {
	var scores []float64
	if err := json.Unmarshal([]byte(StripFences(text)), &scores); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "unparseable rerank response: %v", err)
	}
	if len(scores) != n {
		return nil, docdex.Errorf(docdex.EINTERNAL, "rerank returned %d scores, want %d", len(scores), n)
	}
	return scores, nil
}

// AnswerExtractor implements docdex.AnswerExtractor using Gemini.
type AnswerExtractor struct {
	client *genai.Client
}

// NewAnswerExtractor creates a new AnswerExtractor. A nil client is allowed
// and makes the capability unavailable.
func NewAnswerExtractor(client *genai.Client) *AnswerExtractor {
	return &AnswerExtractor{client: client}
}

// IsAvailable reports whether answer extraction calls can be served.
func (a *AnswerExtractor) IsAvailable() bool {
	return a.client != nil
}

// ExtractAnswer extracts a precise answer span with a confidence score
// from the passage. A passage that does not answer the query yields an
// ENOTFOUND error.
func (a *AnswerExtractor) ExtractAnswer(ctx context.Context, query, passage string) (*docdex.Answer, error) {
	if !a.IsAvailable() {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "answer extractor unavailable")
	}

	text, err := generate(ctx, a.client, BuildAnswerPrompt(query, passage),
		scoringConfig("You extract precise answers from documentation passages. Respond with JSON only."))
	if err != nil {
		return nil, err
	}
	return ParseAnswer(text)
}

// BuildAnswerPrompt builds the answer extraction prompt.
func BuildAnswerPrompt(query, passage string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<passage>\n%s\n</passage>\n\n", passage)
	fmt.Fprintf(&sb, "Question: %s\n\n", query)
	sb.WriteString(`Extract the shortest span of the passage that answers the question. Respond with JSON: {"answer": "<span>", "confidence": <0.0-1.0>}. If the passage does not answer the question, use an empty answer and confidence 0.`)
	return sb.String()
}

// ParseAnswer parses the answer JSON from model output. An empty answer
// span means the passage holds no answer and maps to ENOTFOUND.
func ParseAnswer(text string) (*docdex.Answer, error) {
	var parsed struct {
		Answer     string  `json:"answer"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(StripFences(text)), &parsed); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "unparseable answer response: %v", err)
	}
	if strings.TrimSpace(parsed.Answer) == "" {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "passage does not answer the question")
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return &docdex.Answer{Text: parsed.Answer, Confidence: parsed.Confidence}, nil
}

// Summarizer implements docdex.Summarizer using Gemini.
type Summarizer struct {
	client *genai.Client
}

// NewSummarizer creates a new Summarizer. A nil client is allowed and
// makes the capability unavailable.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client}
}

// IsAvailable reports whether summarize calls can be served.
func (s *Summarizer) IsAvailable() bool {
	return s.client != nil
}

// Summarize produces a one- or two-sentence summary of the passage.
func (s *Summarizer) Summarize(ctx context.Context, passage string) (string, error) {
	if !s.IsAvailable() {
		return "", docdex.Errorf(docdex.EUNAVAILABLE, "summarizer unavailable")
	}

	text, err := generate(ctx, s.client, BuildSummaryPrompt(passage),
		scoringConfig("You summarize documentation passages for search results. Respond with the summary only."))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// BuildSummaryPrompt builds the summarization prompt.
func BuildSummaryPrompt(passage string) string {
	return fmt.Sprintf("<passage>\n%s\n</passage>\n\nSummarize this passage in one or two sentences for a documentation search result.", passage)
}
