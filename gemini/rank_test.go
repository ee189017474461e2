package gemini_test

import (
	"context"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_are_unavailable_without_a_client(t *testing.T) {
	t.Parallel()

	assert.False(t, gemini.NewEmbedder(nil).IsAvailable())
	assert.False(t, gemini.NewReranker(nil).IsAvailable())
	assert.False(t, gemini.NewAnswerExtractor(nil).IsAvailable())
	assert.False(t, gemini.NewSummarizer(nil).IsAvailable())

	_, err := gemini.NewEmbedder(nil).Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))

	_, err = gemini.NewReranker(nil).Rerank(context.Background(), "q", []string{"c"})
	require.Error(t, err)
	assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
}

func TestBuildRerankPrompt_numbers_passages_in_order(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildRerankPrompt("how to install", []string{"first passage", "second passage"})

	assert.Contains(t, prompt, `<passage index="1">`)
	assert.Contains(t, prompt, "first passage")
	assert.Contains(t, prompt, `<passage index="2">`)
	assert.Contains(t, prompt, "second passage")
	assert.Contains(t, prompt, "Query: how to install")
	assert.Contains(t, prompt, "JSON array of 2 numbers")
}

func TestParseScores(t *testing.T) {
	t.Parallel()

	t.Run("plain JSON array", func(t *testing.T) {
		t.Parallel()
		scores, err := gemini.ParseScores("[0.9, 0.1, 0.5]", 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.9, 0.1, 0.5}, scores)
	})

	t.Run("fenced JSON array", func(t *testing.T) {
		t.Parallel()
		scores, err := gemini.ParseScores("```json\n[0.9, 0.1]\n```", 2)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.9, 0.1}, scores)
	})

	t.Run("wrong count", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.ParseScores("[0.9]", 2)
		require.Error(t, err)
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(err))
	})

	t.Run("not JSON", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.ParseScores("the first passage is best", 1)
		require.Error(t, err)
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(err))
	})
}

func TestBuildAnswerPrompt_contains_passage_and_question(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildAnswerPrompt("what port?", "The server listens on port 8080.")

	assert.Contains(t, prompt, "The server listens on port 8080.")
	assert.Contains(t, prompt, "Question: what port?")
	assert.Contains(t, prompt, `"confidence"`)
}

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	t.Run("answer with confidence", func(t *testing.T) {
		t.Parallel()
		answer, err := gemini.ParseAnswer(`{"answer": "port 8080", "confidence": 0.85}`)
		require.NoError(t, err)
		assert.Equal(t, "port 8080", answer.Text)
		assert.Equal(t, 0.85, answer.Confidence)
	})

	t.Run("confidence clamped to range", func(t *testing.T) {
		t.Parallel()
		answer, err := gemini.ParseAnswer(`{"answer": "yes", "confidence": 1.7}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, answer.Confidence)
	})

	t.Run("empty answer means not found", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.ParseAnswer(`{"answer": "", "confidence": 0}`)
		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("fenced response", func(t *testing.T) {
		t.Parallel()
		answer, err := gemini.ParseAnswer("```json\n{\"answer\": \"port 8080\", \"confidence\": 0.5}\n```")
		require.NoError(t, err)
		assert.Equal(t, "port 8080", answer.Text)
	})
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a": 1}`, gemini.StripFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, gemini.StripFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, gemini.StripFences(`{"a": 1}`))
	assert.Equal(t, "plain text", gemini.StripFences("  plain text  "))
}

func TestBuildSummaryPrompt_contains_passage(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildSummaryPrompt("Install via npm.")
	assert.Contains(t, prompt, "Install via npm.")
	assert.Contains(t, prompt, "one or two sentences")
}
