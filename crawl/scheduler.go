// Package crawl provides the crawl scheduler: a single-slot job coordinator
// that walks documentation sites breadth-first from seed URLs, dispatching
// fetched pages through extraction, chunking, embedding, and indexing while
// reporting progress through events.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docdex/docdex"
)

// Frontier sizing for crawl jobs.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for the pre-filter.
	frontierFalsePositiveRate = 0.01
)

// Scheduler coordinates crawl jobs. At most one job is active at a time;
// starting a second is rejected with ECONFLICT rather than queued.
type Scheduler struct {
	Fetcher   docdex.Fetcher
	Extractor docdex.Extractor

	// Fallback extracts content when the primary Extractor fails or finds
	// nothing. Optional.
	Fallback docdex.Extractor

	Converter docdex.Converter
	Links     docdex.LinkExtractor
	Chunker   docdex.Chunker

	// Embedder and Index are optional as a pair: without them pages are
	// still crawled and chunked but nothing is indexed.
	Embedder docdex.Embedder
	Index    docdex.VectorIndex

	// Seeds expands job seeds from sitemaps before recursive crawling. Optional.
	Seeds docdex.SeedExpander

	// Limiter enforces per-domain politeness. Optional.
	Limiter docdex.DomainLimiter

	RetryDelays []time.Duration

	// Notify receives job events. Called from worker goroutines.
	Notify docdex.EventFunc

	mu     sync.Mutex
	active *jobState
}

// jobState is the per-job crawl state shared by the dispatcher and its
// worker goroutines.
type jobState struct {
	job     *docdex.Job
	allowed map[string]bool

	mu           sync.Mutex
	cond         *sync.Cond
	frontier     *Frontier
	inFlight     int
	processed    int
	discovered   int
	cancelled    bool
	cancelReason string

	done chan struct{}
}

func newJobState(job *docdex.Job) *jobState {
	st := &jobState{
		job:      job,
		allowed:  make(map[string]bool),
		frontier: NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		done:     make(chan struct{}),
	}
	st.cond = sync.NewCond(&st.mu)
	for _, domain := range job.AllowedDomains {
		st.allowed[domain] = true
	}
	return st
}

func (st *jobState) isCancelled() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.cancelled
}

func (st *jobState) addProcessed() {
	st.mu.Lock()
	st.processed++
	st.mu.Unlock()
}

// Start validates and launches a crawl job, returning immediately. An
// ECONFLICT error is returned if a job is already running. Progress is
// reported through the Notify callback until a terminal JobUpdate.
func (s *Scheduler) Start(ctx context.Context, job *docdex.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	job.Normalize()

	st := newJobState(job)

	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return docdex.Errorf(docdex.ECONFLICT, "job already running")
	}
	s.active = st
	s.mu.Unlock()

	go s.run(ctx, st)
	return nil
}

// Cancel requests cooperative cancellation of the active job. An empty
// jobID targets whatever job is running. It is a no-op when idle or when
// a non-empty jobID does not match the active job. Pending URLs are
// dropped; in-flight pages finish silently without emitting results.
func (s *Scheduler) Cancel(jobID, reason string) {
	s.mu.Lock()
	st := s.active
	s.mu.Unlock()
	if st == nil || (jobID != "" && st.job.ID != jobID) {
		return
	}

	st.mu.Lock()
	if !st.cancelled {
		st.cancelled = true
		st.cancelReason = reason
		st.frontier.Clear()
		st.cond.Broadcast()
	}
	st.mu.Unlock()
}

// Active returns the ID of the running job, if any.
func (s *Scheduler) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return "", false
	}
	return s.active.job.ID, true
}

// Wait blocks until the active job reaches a terminal state. It returns
// immediately when idle.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	st := s.active
	s.mu.Unlock()
	if st != nil {
		<-st.done
	}
}

// run is the job dispatcher. It pops links off the frontier and hands them
// to a bounded pool of workers, blocking on the condition variable while
// the frontier is empty but pages are still in flight. The in-flight
// counter makes quiescence exact: the job is done when the frontier is
// empty and no worker is running.
func (s *Scheduler) run(ctx context.Context, st *jobState) {
	defer func() {
		s.mu.Lock()
		s.active = nil
		s.mu.Unlock()
		close(st.done)
	}()

	job := st.job
	ctx = docdex.WithUserAgent(ctx, job.UserAgent)
	s.notify(docdex.JobUpdate{JobID: job.ID, Phase: docdex.JobRunning})

	s.seed(ctx, st)

	sem := make(chan struct{}, job.Concurrency)
	var wg sync.WaitGroup

	st.mu.Lock()
	for {
		if st.cancelled {
			break
		}
		link, ok := st.frontier.Pop()
		if !ok {
			if st.inFlight == 0 {
				break
			}
			st.cond.Wait()
			continue
		}
		st.inFlight++
		st.mu.Unlock()

		sem <- struct{}{}
		wg.Add(1)
		go func(link docdex.Link) {
			defer wg.Done()
			s.processURL(ctx, st, link)
			<-sem

			st.mu.Lock()
			st.inFlight--
			st.cond.Broadcast()
			st.mu.Unlock()
		}(link)

		st.mu.Lock()
	}
	cancelled := st.cancelled
	reason := st.cancelReason
	st.mu.Unlock()

	wg.Wait()

	st.mu.Lock()
	processed, discovered := st.processed, st.discovered
	st.mu.Unlock()

	phase := docdex.JobCompleted
	if cancelled {
		phase = docdex.JobCancelled
	}
	s.notify(docdex.JobUpdate{
		JobID:      job.ID,
		Phase:      phase,
		Processed:  processed,
		Discovered: discovered,
		Reason:     reason,
	})
}

// seed enqueues the job's seed URLs at depth 0, expanded through sitemaps
// when a SeedExpander is configured. Sitemap discovery failures fall back
// silently to recursive crawling from the seeds alone.
func (s *Scheduler) seed(ctx context.Context, st *jobState) {
	job := st.job
	for _, seed := range job.SeedURLs {
		s.enqueue(st, seed, 0)
	}
	if s.Seeds == nil {
		return
	}
	for _, seed := range job.SeedURLs {
		urls, err := s.Seeds.Expand(ctx, seed, job.MaxPages)
		if err != nil {
			continue
		}
		for _, u := range urls {
			s.enqueue(st, u, 0)
		}
	}
}

// enqueue normalizes a discovered URL and queues it, dropping it when it
// is invalid, beyond the depth limit, off-domain, already seen, or over
// the page budget. Accepted URLs are marked visited atomically with the
// queue insert, so concurrent discovery of the same URL queues it once.
func (s *Scheduler) enqueue(st *jobState, rawURL string, depth int) {
	job := st.job

	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return
	}
	if depth > job.MaxDepth {
		return
	}
	if !job.FollowExternal && !st.allowed[hostOf(norm)] {
		return
	}

	st.mu.Lock()
	if st.cancelled || st.discovered >= job.MaxPages || !st.frontier.Push(docdex.Link{URL: norm, Depth: depth}) {
		st.mu.Unlock()
		return
	}
	st.discovered++
	st.cond.Broadcast()
	st.mu.Unlock()

	s.notify(docdex.PageProgress{JobID: job.ID, URL: norm, Depth: depth, Stage: docdex.StageQueued})
}

// processURL runs one page through the pipeline: rate limit, fetch with
// retry, content dispatch, chunk, embed, index, then link discovery at
// depth+1. Page-level errors consume the page's budget slot and the job
// continues. The cancel flag is checked before every externally visible
// step so a cancelled job stops emitting promptly.
func (s *Scheduler) processURL(ctx context.Context, st *jobState, link docdex.Link) {
	job := st.job
	if st.isCancelled() {
		return
	}
	s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageFetching})

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, hostOf(link.URL)); err != nil {
			s.fail(st, link, fmt.Sprintf("rate limit wait: %v", err))
			return
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, link.URL, s.Fetcher.Fetch, delays)
	if err != nil {
		s.fail(st, link, err.Error())
		return
	}

	content, err := s.parseContent(fetched, link.URL)
	if err != nil {
		s.fail(st, link, err.Error())
		return
	}

	if st.isCancelled() {
		return
	}

	text := strings.TrimSpace(content.Markdown)
	if text == "" {
		st.addProcessed()
		s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageSkipped, Reason: "empty-content"})
		return
	}

	chunks := s.Chunker.Chunk(text, docdex.ChunkOptions{
		TokensPerChunk: job.TokensPerChunk,
		OverlapTokens:  job.OverlapTokens,
		MinChunkTokens: job.MinChunkTokens,
		JobID:          job.ID,
		SourceURL:      link.URL,
		HeadingPath:    docdex.HeadingPathForPage(content.Title, content.Headings),
	})

	s.indexChunks(ctx, st, link, chunks)

	if st.isCancelled() {
		return
	}

	s.notify(docdex.PageResult{
		JobID:       job.ID,
		URL:         link.URL,
		Depth:       link.Depth,
		Title:       content.Title,
		Headings:    content.Headings,
		Chunks:      chunks,
		ContentHash: ContentHash(text),
		FetchedAt:   time.Now().UTC(),
	})
	s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageParsed})
	st.addProcessed()

	if link.Depth < job.MaxDepth {
		for _, outbound := range content.Links {
			s.enqueue(st, outbound, link.Depth+1)
		}
	}
}

// indexChunks embeds and indexes a page's chunks. Failures emit a failed
// stage but do not fail the page: the crawl result is still delivered and
// links are still followed.
func (s *Scheduler) indexChunks(ctx context.Context, st *jobState, link docdex.Link, chunks []*docdex.Chunk) {
	if s.Embedder == nil || s.Index == nil || len(chunks) == 0 || !s.Embedder.IsAvailable() {
		return
	}
	job := st.job
	if st.isCancelled() {
		return
	}
	s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageEmbedding})

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageFailed, Reason: fmt.Sprintf("embedding: %v", err)})
		return
	}
	if err := s.Index.AddChunks(ctx, job.ID, chunks, vectors); err != nil {
		s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageFailed, Reason: fmt.Sprintf("indexing: %v", err)})
		return
	}
	s.notify(docdex.PageProgress{JobID: job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageIndexed})
}

// fail reports a terminal page failure. The page's budget slot stays
// consumed so a failing site cannot extend a job indefinitely.
func (s *Scheduler) fail(st *jobState, link docdex.Link, reason string) {
	if st.isCancelled() {
		return
	}
	st.addProcessed()
	s.notify(docdex.PageProgress{JobID: st.job.ID, URL: link.URL, Depth: link.Depth, Stage: docdex.StageFailed, Reason: reason})
}

func (s *Scheduler) notify(event docdex.Event) {
	if s.Notify != nil {
		s.Notify(event)
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// ContentHash returns the xxhash of page content, hex-encoded. It lets
// consumers detect unchanged pages across crawls.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
