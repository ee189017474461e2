package docdex

import (
	"fmt"
	"strings"
)

// FormatChunks formats chunks for LLM context. Each chunk is headed by its
// index, source URL, and heading path so model output can cite candidates
// by number.
func FormatChunks(chunks []*Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, c := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s", i+1, c.SourceURL)
		if len(c.HeadingPath) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(c.HeadingPath, " > "))
		}
		sb.WriteString("\n")
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// NormalizeQuery lowercases query text and collapses whitespace runs so
// that trivially different spellings share a cache key.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
