package docdex

import "context"

// Link is a URL queued for crawling at a given depth.
type Link struct {
	URL   string
	Depth int
}

// URLFrontier manages a crawl queue with atomic check-and-insert
// deduplication. Push returns false if the URL has already been seen;
// a URL stays seen after Pop, so re-discovery never re-queues it.
type URLFrontier interface {
	Push(link Link) bool
	Pop() (Link, bool)
	Len() int
	Seen(url string) bool

	// Clear drops all pending links. Seen URLs stay seen.
	Clear()
}

// DomainLimiter provides per-domain request rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
