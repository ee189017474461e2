package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
)

// Ensure Links implements docdex.LinkExtractor at compile time.
var _ docdex.LinkExtractor = (*Links)(nil)

// Links extracts normalized absolute outbound links from HTML.
// Host and depth policy is the crawl scheduler's concern; Links reports
// every resolvable HTTP link exactly once, in document order.
type Links struct{}

// NewLinks creates a new Links extractor.
func NewLinks() *Links {
	return &Links{}
}

// ExtractLinks parses HTML and returns absolute links resolved against
// baseURL. Fragments are stripped, non-HTTP schemes and self-references
// are skipped, and duplicates are removed.
func (l *Links) ExtractLinks(rawHTML string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links, nil
}

// isNonHTTPLink reports javascript:, mailto:, tel:, and similar schemes.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base, strips the fragment, and drops
// self-references and non-HTTP schemes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	stripped := *base
	stripped.Fragment = ""
	if resolved.String() == stripped.String() {
		return ""
	}
	return resolved.String()
}
