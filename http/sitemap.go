package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/docdex/docdex"
)

// maxSitemapDepth bounds sitemap-index recursion.
const maxSitemapDepth = 3

// Ensure SitemapExpander implements docdex.SeedExpander at compile time.
var _ docdex.SeedExpander = (*SitemapExpander)(nil)

// SitemapExpander discovers seed URLs from a site's sitemaps. It checks
// robots.txt for sitemap directives first and falls back to /sitemap.xml;
// sitemap indexes are resolved recursively.
type SitemapExpander struct {
	client *http.Client
}

// NewSitemapExpander creates a new SitemapExpander with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapExpander(client *http.Client) *SitemapExpander {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapExpander{client: client}
}

// Expand returns up to limit page URLs discovered from baseURL's sitemaps.
// A missing sitemap is not an error: the result is simply empty and the
// caller falls back to recursive crawling from the seed alone.
func (s *SitemapExpander) Expand(ctx context.Context, baseURL string, limit int) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}
	if limit <= 0 {
		return nil, nil
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs := s.fromRobots(ctx, root.String())
	if len(sitemapURLs) == 0 {
		sitemapURLs = []string{root.String() + "/sitemap.xml"}
	}

	seen := make(map[string]bool)
	var urls []string
	for _, sitemapURL := range sitemapURLs {
		s.collect(ctx, sitemapURL, 0, limit, seen, &urls)
		if len(urls) >= limit {
			break
		}
	}
	return urls, nil
}

// fromRobots returns sitemap URLs listed in robots.txt, if any.
func (s *SitemapExpander) fromRobots(ctx context.Context, root string) []string {
	body, err := s.get(ctx, root+"/robots.txt")
	if err != nil {
		return nil
	}

	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(strings.ToLower(line), "sitemap:"); ok {
			// Cut on the lowered line only to find the offset; the URL
			// itself keeps its original case.
			sitemap := strings.TrimSpace(line[len(line)-len(rest):])
			if sitemap != "" {
				sitemaps = append(sitemaps, sitemap)
			}
		}
	}
	return sitemaps
}

// collect parses one sitemap document, recursing into sitemap indexes.
func (s *SitemapExpander) collect(ctx context.Context, sitemapURL string, depth, limit int, seen map[string]bool, urls *[]string) {
	if depth > maxSitemapDepth || len(*urls) >= limit || seen[sitemapURL] {
		return
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return
	}
	root := doc.Root()
	if root == nil {
		return
	}

	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			if loc := sm.SelectElement("loc"); loc != nil {
				s.collect(ctx, strings.TrimSpace(loc.Text()), depth+1, limit, seen, urls)
				if len(*urls) >= limit {
					return
				}
			}
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			pageURL := strings.TrimSpace(loc.Text())
			if pageURL == "" || seen[pageURL] {
				continue
			}
			seen[pageURL] = true
			*urls = append(*urls, pageURL)
			if len(*urls) >= limit {
				return
			}
		}
	}
}

func (s *SitemapExpander) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
