package docdex_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("fenced block with language", func(t *testing.T) {
		t.Parallel()
		text := "Install it:\n```bash\nnpm install docdex\n```\nDone."
		blocks := docdex.ExtractCodeBlocks(text)

		require.Len(t, blocks, 1)
		assert.Equal(t, "bash", blocks[0].Language)
		assert.Equal(t, "npm install docdex", blocks[0].Code)
	})

	t.Run("multiple fences in order", func(t *testing.T) {
		t.Parallel()
		text := "```go\nfunc main() {}\n```\nand then\n```\nplain\n```"
		blocks := docdex.ExtractCodeBlocks(text)

		require.Len(t, blocks, 2)
		assert.Equal(t, "go", blocks[0].Language)
		assert.Equal(t, "func main() {}", blocks[0].Code)
		assert.Equal(t, "", blocks[1].Language)
		assert.Equal(t, "plain", blocks[1].Code)
	})

	t.Run("empty fence skipped", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, docdex.ExtractCodeBlocks("```\n   \n```"))
	})

	t.Run("inline spans grouped when abundant", func(t *testing.T) {
		t.Parallel()
		text := "Call `client.Connect()`, then `client.Subscribe(topic)` and finally `client.Close()`."
		blocks := docdex.ExtractCodeBlocks(text)

		require.Len(t, blocks, 1)
		assert.Equal(t, "", blocks[0].Language)
		assert.Equal(t, "client.Connect()\nclient.Subscribe(topic)\nclient.Close()", blocks[0].Code)
	})

	t.Run("sparse inline spans ignored", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, docdex.ExtractCodeBlocks("Use the `--verbose` flag for more output."))
	})

	t.Run("fences win over inline spans", func(t *testing.T) {
		t.Parallel()
		text := "Set `a`, `b` and `c` like so:\n```sh\nexport DOCDEX_DB=/tmp/db\n```"
		blocks := docdex.ExtractCodeBlocks(text)

		require.Len(t, blocks, 1)
		assert.Equal(t, "sh", blocks[0].Language)
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, docdex.ExtractCodeBlocks(""))
	})
}
