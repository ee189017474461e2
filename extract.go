package docdex

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title from metadata.
	Title string

	// Headings are the page's top-level headings, in document order,
	// bounded by the extractor.
	Headings []string

	// ContentHTML is the main content as clean HTML, with boilerplate
	// (nav, footer, sidebar) removed but structure preserved.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Implementations prefer semantic containers (main, article, role=main)
// over whole-body text.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean HTML to Markdown, preserving code fences,
// lists, and table structure for later LLM consumption.
type Converter interface {
	Convert(html string) (string, error)
}

// LinkExtractor returns normalized absolute outbound links from HTML.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]string, error)
}
