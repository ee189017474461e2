// Package goquery provides CSS-selector based HTML content and link
// extraction. Its Extractor is the structural fallback used when the
// trafilatura extractor yields nothing useful.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
)

// maxHeadings bounds the number of top-level headings reported per page.
const maxHeadings = 8

// semanticContainers are tried in order before falling back to body.
var semanticContainers = []string{
	"main",
	"article",
	"[role=main]",
	"#content",
	".content",
	".main-content",
	".markdown-body",
}

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor selects main page content by semantic container, preferring
// main/article/role=main regions over whole-body text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title, top-level headings, and the HTML of the
// first matching semantic container (whole body when none matches).
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	// Scripts and styles would otherwise leak into extracted text.
	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var headings []string
	doc.Find("h1, h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
		return len(headings) < maxHeadings
	})

	content := selectContent(doc)
	contentHTML, err := content.Html()
	if err != nil {
		return nil, err
	}

	return &docdex.ExtractResult{
		Title:       title,
		Headings:    headings,
		ContentHTML: contentHTML,
	}, nil
}

// selectContent returns the first non-empty semantic container, or body.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range semanticContainers {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	return doc.Find("body").First()
}
