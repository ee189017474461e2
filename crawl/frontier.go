package crawl

import (
	"sync"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bloom"
)

// Compile-time interface verification.
var _ docdex.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with exact visited-set
// deduplication. A Bloom filter screens lookups so the common negative
// case never touches the map; positives are confirmed against the map,
// which keeps dedup exact despite filter false positives.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	pre     *bloom.Filter
	visited map[string]bool
	queue   []docdex.Link
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given Bloom filter false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		pre:     bloom.NewFilter(n, fpRate),
		visited: make(map[string]bool),
	}
}

// Push queues a link in discovery order. It returns false if the URL has
// already been seen; a URL stays seen after Pop, so re-discovery never
// re-queues it. Callers normalize URLs before pushing.
func (f *Frontier) Push(link docdex.Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pre.Test(link.URL) && f.visited[link.URL] {
		return false
	}
	f.pre.Add(link.URL)
	f.visited[link.URL] = true
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link.
// The bool result is false if the queue is empty.
func (f *Frontier) Pop() (docdex.Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return docdex.Link{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of links waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at any point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pre.Test(url) && f.visited[url]
}

// Clear drops all pending links. Seen URLs stay seen.
func (f *Frontier) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = nil
}
