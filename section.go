package docdex

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// removeCodeBlocks removes fenced code blocks from markdown.
func removeCodeBlocks(s string) string {
	codeBlockRe := regexp.MustCompile("(?s)```.*?```")
	return codeBlockRe.ReplaceAllString(s, "")
}

// ExtractHeadings parses markdown and returns up to limit headings of level
// maxLevel or shallower, in document order. Headings inside fenced code
// blocks are ignored.
func ExtractHeadings(markdown string, maxLevel, limit int) []string {
	if markdown == "" || limit <= 0 {
		return nil
	}

	cleaned := removeCodeBlocks(markdown)
	matches := headingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []string
	for _, match := range matches {
		if len(match[1]) > maxLevel {
			continue
		}
		headings = append(headings, strings.TrimSpace(match[2]))
		if len(headings) >= limit {
			break
		}
	}
	return headings
}

// HeadingPathForPage returns the heading path shared by all chunks of a
// page: its title (when present) followed by its first top-level heading
// when that differs from the title.
func HeadingPathForPage(title string, headings []string) []string {
	var path []string
	if title != "" {
		path = append(path, title)
	}
	if len(headings) > 0 && headings[0] != title {
		path = append(path, headings[0])
	}
	return path
}
