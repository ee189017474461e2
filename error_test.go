package docdex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.ENOTFOUND, "job %q not found", "abc")
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("starting crawl: %w", docdex.Errorf(docdex.ECONFLICT, "job already running"))
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.EINVALID, "max pages must be >= 1")
		assert.Equal(t, "max pages must be >= 1", docdex.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docdex.ErrorMessage(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorMessage(nil))
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := docdex.Errorf(docdex.EUNAVAILABLE, "llm disabled")
	assert.Equal(t, "docdex error: code=unavailable message=llm disabled", err.Error())
}
