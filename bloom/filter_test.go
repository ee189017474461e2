package bloom_test

import (
	"fmt"
	"testing"

	"github.com/docdex/docdex/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_negative_answers_are_definitive(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://docs.example.com/intro"))

	f.Add("https://docs.example.com/intro")

	assert.True(t, f.Test("https://docs.example.com/intro"))
	assert.False(t, f.Test("https://docs.example.com/other"))
}

func TestFilter_repeated_add_does_not_grow_count(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	url := "https://docs.example.com/intro"

	f.Add(url)
	first := f.EstimatedCount()

	f.Add(url)
	f.Add(url)

	assert.Equal(t, first, f.EstimatedCount())
}

func TestFilter_false_positive_rate_stays_near_target(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://docs.example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://docs.example.com/missing/%d", i)) {
			falsePositives++
		}
	}

	// Allow 3x headroom over the configured rate.
	assert.Less(t, falsePositives, int(3*fpRate*testProbes),
		"false positive rate too high: %d/%d", falsePositives, testProbes)
}
