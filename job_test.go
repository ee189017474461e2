package docdex_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     docdex.Job
		wantErr string
	}{
		{
			name: "valid",
			job:  docdex.Job{SeedURLs: []string{"https://docs.example.com"}, MaxPages: 10},
		},
		{
			name:    "no seeds",
			job:     docdex.Job{MaxPages: 10},
			wantErr: "at least one seed URL",
		},
		{
			name:    "relative seed",
			job:     docdex.Job{SeedURLs: []string{"/docs/intro"}, MaxPages: 10},
			wantErr: "invalid seed URL",
		},
		{
			name:    "unsupported scheme",
			job:     docdex.Job{SeedURLs: []string{"ftp://example.com/docs"}, MaxPages: 10},
			wantErr: "invalid seed URL",
		},
		{
			name:    "negative depth",
			job:     docdex.Job{SeedURLs: []string{"https://docs.example.com"}, MaxDepth: -1, MaxPages: 10},
			wantErr: "max depth",
		},
		{
			name:    "zero pages",
			job:     docdex.Job{SeedURLs: []string{"https://docs.example.com"}},
			wantErr: "max pages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.job.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
			assert.Contains(t, docdex.ErrorMessage(err), tt.wantErr)
		})
	}
}

func TestJob_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults", func(t *testing.T) {
		t.Parallel()
		job := docdex.Job{SeedURLs: []string{"https://docs.example.com/guide"}}
		job.Normalize()

		assert.Equal(t, docdex.DefaultMaxPages, job.MaxPages)
		assert.Equal(t, docdex.DefaultConcurrency, job.Concurrency)
		assert.Equal(t, docdex.DefaultUserAgent, job.UserAgent)
		assert.Equal(t, docdex.DefaultTokensPerChunk, job.TokensPerChunk)
		assert.Equal(t, docdex.DefaultOverlapTokens, job.OverlapTokens)
		assert.Equal(t, docdex.DefaultMinChunkTokens, job.MinChunkTokens)
	})

	t.Run("derives allowed domains from seeds", func(t *testing.T) {
		t.Parallel()
		job := docdex.Job{SeedURLs: []string{
			"https://docs.example.com/a",
			"https://docs.example.com/b",
			"https://api.example.com",
		}}
		job.Normalize()

		assert.Equal(t, []string{"docs.example.com", "api.example.com"}, job.AllowedDomains)
	})

	t.Run("negative overlap requests zero", func(t *testing.T) {
		t.Parallel()
		job := docdex.Job{
			SeedURLs:      []string{"https://docs.example.com"},
			OverlapTokens: -1,
		}
		job.Normalize()

		assert.Equal(t, 0, job.OverlapTokens)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()
		job := docdex.Job{
			SeedURLs:       []string{"https://docs.example.com"},
			MaxPages:       7,
			Concurrency:    2,
			UserAgent:      "custom/1.0",
			AllowedDomains: []string{"other.example.com"},
		}
		job.Normalize()

		assert.Equal(t, 7, job.MaxPages)
		assert.Equal(t, 2, job.Concurrency)
		assert.Equal(t, "custom/1.0", job.UserAgent)
		assert.Equal(t, []string{"other.example.com"}, job.AllowedDomains)
	})
}
