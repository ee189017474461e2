package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/docdex/docdex"
)

// maxPageHeadings bounds the headings kept per page, matching the HTML
// extractors.
const maxPageHeadings = 8

// pageContent is the normalized output of content dispatch: what remains
// of a fetched page once transport and format details are resolved.
type pageContent struct {
	Title    string
	Headings []string
	Markdown string
	Links    []string
}

// parseContent dispatches a fetched page by media type or, when the
// server's Content-Type is uninformative, by file extension. HTML goes
// through main-content extraction and markdown conversion and yields
// outbound links; markdown is taken as-is with headings parsed from the
// source; anything else is treated as raw text with no links.
func (s *Scheduler) parseContent(result *docdex.FetchResult, pageURL string) (*pageContent, error) {
	switch result.ContentType {
	case "text/markdown", "text/x-markdown":
		return s.parseMarkdown(result.Body), nil
	case "text/html", "application/xhtml+xml":
		return s.parseHTML(result.Body, pageURL)
	}
	// Doc sites routinely serve .md files as text/plain; the extension is
	// the more reliable signal.
	if isMarkdownURL(pageURL) {
		return s.parseMarkdown(result.Body), nil
	}
	if result.ContentType == "" {
		return s.parseHTML(result.Body, pageURL)
	}
	return &pageContent{Markdown: result.Body}, nil
}

// isMarkdownURL reports whether the URL path carries a markdown extension.
func isMarkdownURL(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func (s *Scheduler) parseMarkdown(body string) *pageContent {
	headings := docdex.ExtractHeadings(body, 2, maxPageHeadings)
	var title string
	if len(headings) > 0 {
		title = headings[0]
	}
	return &pageContent{
		Title:    title,
		Headings: headings,
		Markdown: body,
	}
}

func (s *Scheduler) parseHTML(html, pageURL string) (*pageContent, error) {
	extracted, err := s.Extractor.Extract(html)
	if err != nil || strings.TrimSpace(extracted.ContentHTML) == "" {
		if s.Fallback != nil {
			if fallback, ferr := s.Fallback.Extract(html); ferr == nil {
				extracted, err = fallback, nil
			}
		}
		if err != nil {
			return nil, err
		}
	}

	var markdown string
	if strings.TrimSpace(extracted.ContentHTML) != "" {
		markdown, err = s.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			return nil, err
		}
	}

	content := &pageContent{
		Title:    extracted.Title,
		Headings: extracted.Headings,
		Markdown: markdown,
	}

	// Link extraction works on the full document: navigation links live in
	// the boilerplate the content extractor strips away.
	if s.Links != nil {
		if links, err := s.Links.ExtractLinks(html, pageURL); err == nil {
			content.Links = links
		}
	}
	return content, nil
}
