package docdex

import "context"

// FetchResult holds a fetched page body with its transport metadata.
type FetchResult struct {
	// Body is the raw response body.
	Body string

	// ContentType is the media type from the Content-Type header,
	// without parameters (e.g. "text/html").
	ContentType string

	StatusCode int
}

// Fetcher retrieves page content over the network using the crawl job's
// configured user agent. Non-2xx responses are errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases transport resources.
	Close() error
}

type userAgentKey struct{}

// WithUserAgent returns a context carrying a per-request user agent.
// Fetchers use it to override their configured default, so the crawl
// scheduler can apply each job's user agent without rebuilding transports.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	if userAgent == "" {
		return ctx
	}
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// UserAgentOverride returns the user agent carried by ctx, if any.
func UserAgentOverride(ctx context.Context) (string, bool) {
	ua, ok := ctx.Value(userAgentKey{}).(string)
	return ua, ok
}

// SeedExpander discovers additional seed URLs for a site, e.g. from
// robots.txt sitemap directives and sitemap.xml indexes.
type SeedExpander interface {
	Expand(ctx context.Context, baseURL string, limit int) ([]string, error)
}
