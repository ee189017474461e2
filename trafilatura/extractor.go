// Package trafilatura extracts main page content from HTML, removing
// boilerplate (navigation, sidebars, footers) before markdown conversion.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/docdex/docdex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// maxHeadings bounds the number of top-level headings reported per page.
const maxHeadings = 8

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with the page
// title and up to maxHeadings top-level headings.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	var headings []string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		headings = collectHeadings(result.ContentNode)
	}

	return &docdex.ExtractResult{
		Title:       result.Metadata.Title,
		Headings:    headings,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectHeadings walks the content tree and returns h1/h2 text in
// document order, bounded by maxHeadings.
func collectHeadings(root *html.Node) []string {
	var headings []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(headings) >= maxHeadings {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "h1" || n.Data == "h2") {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				headings = append(headings, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return headings
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
