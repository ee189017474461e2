package docdex

import (
	"regexp"
	"strings"
)

// CodeBlock is a literal code block extracted from chunk text.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

var (
	fencedRe = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)\\n?(.*?)```")
	inlineRe = regexp.MustCompile("`([^`\n]+)`")
)

// Thresholds for grouping abundant inline code spans into a synthetic block.
const (
	inlineGroupMinSpans = 3
	inlineGroupMinChars = 24
)

// ExtractCodeBlocks returns fenced code blocks from markdown-like text.
// When the text carries no fences but is rich in inline code spans, the
// spans are grouped into a single synthetic block so that code-heavy prose
// still yields copyable code.
func ExtractCodeBlocks(text string) []CodeBlock {
	if text == "" {
		return nil
	}

	var blocks []CodeBlock
	for _, match := range fencedRe.FindAllStringSubmatch(text, -1) {
		code := strings.TrimRight(match[2], "\n")
		if strings.TrimSpace(code) == "" {
			continue
		}
		blocks = append(blocks, CodeBlock{
			Language: match[1],
			Code:     code,
		})
	}
	if len(blocks) > 0 {
		return blocks
	}

	// No fences: group inline spans if they are abundant enough to suggest
	// the chunk is describing code.
	var spans []string
	total := 0
	for _, match := range inlineRe.FindAllStringSubmatch(text, -1) {
		span := strings.TrimSpace(match[1])
		if span == "" {
			continue
		}
		spans = append(spans, span)
		total += len(span)
	}
	if len(spans) < inlineGroupMinSpans || total < inlineGroupMinChars {
		return nil
	}
	return []CodeBlock{{Code: strings.Join(spans, "\n")}}
}
