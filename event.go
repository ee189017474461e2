package docdex

import "time"

// PageStage is the lifecycle stage of one URL within a job. For a single
// URL, stages are emitted in order queued, fetching, (embedding,
// indexed|failed)?, parsed|skipped|failed. No ordering holds across URLs.
type PageStage string

// Page lifecycle stages.
const (
	StageQueued    PageStage = "queued"
	StageFetching  PageStage = "fetching"
	StageEmbedding PageStage = "embedding"
	StageIndexed   PageStage = "indexed"
	StageParsed    PageStage = "parsed"
	StageSkipped   PageStage = "skipped"
	StageFailed    PageStage = "failed"
)

// JobPhase is the lifecycle phase of a crawl job.
// Completed and cancelled are terminal.
type JobPhase string

// Job lifecycle phases.
const (
	JobRunning   JobPhase = "running"
	JobCompleted JobPhase = "completed"
	JobCancelled JobPhase = "cancelled"
	JobError     JobPhase = "error"
)

// QueryStage is the staged progress of a retrieval query.
type QueryStage string

// Query progress stages.
const (
	QueryStarted    QueryStage = "started"
	QueryRetrieving QueryStage = "retrieving"
	QueryScoring    QueryStage = "scoring"
	QueryCompleted  QueryStage = "completed"
	QueryFailed     QueryStage = "failed"
)

// Event is the closed sum of asynchronous notifications emitted by the
// engine toward its host. Consumers dispatch with an exhaustive type switch.
type Event interface{ event() }

// PageProgress reports the lifecycle of one URL within a job.
type PageProgress struct {
	JobID  string    `json:"jobId"`
	URL    string    `json:"url"`
	Depth  int       `json:"depth"`
	Stage  PageStage `json:"stage"`
	Reason string    `json:"reason,omitempty"`
}

// PageResult carries the full payload of a successfully parsed page.
type PageResult struct {
	JobID       string    `json:"jobId"`
	URL         string    `json:"url"`
	Depth       int       `json:"depth"`
	Title       string    `json:"title,omitempty"`
	Headings    []string  `json:"headings,omitempty"`
	Chunks      []*Chunk  `json:"chunks"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// JobUpdate reports a job lifecycle transition with its counters.
type JobUpdate struct {
	JobID      string   `json:"jobId"`
	Phase      JobPhase `json:"phase"`
	Processed  int      `json:"processedPages"`
	Discovered int      `json:"discoveredPages"`
	Reason     string   `json:"reason,omitempty"`
}

// QueryStatus reports staged progress of a retrieval query.
type QueryStatus struct {
	Query  string     `json:"query"`
	Stage  QueryStage `json:"stage"`
	Reason string     `json:"reason,omitempty"`
}

// QueryResult carries the final payload of a retrieval query.
type QueryResult struct {
	Result *RetrievalResult `json:"result"`

	// Intelligent is true when the result came from the full pipeline
	// rather than a plain similarity search.
	Intelligent bool `json:"intelligent"`
}

// CacheStatsEvent carries a result-cache occupancy snapshot.
type CacheStatsEvent struct {
	Stats *CacheStats `json:"stats"`
}

// WorkerError is an unstructured fatal-ish notice from the worker.
type WorkerError struct {
	Message string `json:"message"`
}

func (PageProgress) event()    {}
func (PageResult) event()      {}
func (JobUpdate) event()       {}
func (QueryStatus) event()     {}
func (QueryResult) event()     {}
func (CacheStatsEvent) event() {}
func (WorkerError) event()     {}

// EventFunc receives engine events. Implementations must be safe for
// concurrent use; the scheduler calls it from worker goroutines.
type EventFunc func(Event)
