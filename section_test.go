package docdex_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
)

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	markdown := "# Guide\n\nIntro text.\n\n## Install\n\nSteps.\n\n### Linux\n\n## Usage\n"

	t.Run("respects max level", func(t *testing.T) {
		t.Parallel()
		headings := docdex.ExtractHeadings(markdown, 2, 8)
		assert.Equal(t, []string{"Guide", "Install", "Usage"}, headings)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()
		headings := docdex.ExtractHeadings(markdown, 3, 2)
		assert.Equal(t, []string{"Guide", "Install"}, headings)
	})

	t.Run("ignores headings inside code fences", func(t *testing.T) {
		t.Parallel()
		withFence := "# Real\n\n```\n# not a heading\n```\n\n## Also real\n"
		headings := docdex.ExtractHeadings(withFence, 2, 8)
		assert.Equal(t, []string{"Real", "Also real"}, headings)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, docdex.ExtractHeadings("", 2, 8))
		assert.Nil(t, docdex.ExtractHeadings(markdown, 2, 0))
	})
}

func TestHeadingPathForPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		headings []string
		want     []string
	}{
		{
			name:     "title plus distinct heading",
			title:    "Docdex Guide",
			headings: []string{"Install", "Usage"},
			want:     []string{"Docdex Guide", "Install"},
		},
		{
			name:     "heading equal to title collapses",
			title:    "Install",
			headings: []string{"Install", "Usage"},
			want:     []string{"Install"},
		},
		{
			name:     "no title",
			headings: []string{"Install"},
			want:     []string{"Install"},
		},
		{
			name:  "title only",
			title: "Docdex Guide",
			want:  []string{"Docdex Guide"},
		},
		{
			name: "nothing",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docdex.HeadingPathForPage(tt.title, tt.headings))
		})
	}
}
