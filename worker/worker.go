// Package worker implements the host protocol: a closed set of commands
// dispatched against the scheduler and the retrieval engine, with progress
// and results flowing back over an event channel.
package worker

import (
	"context"
	"fmt"

	"github.com/docdex/docdex"
)

// Command is the closed sum of host commands. Dispatch handles every
// variant with an exhaustive type switch.
type Command interface{ command() }

// StartJob starts a crawl job.
type StartJob struct {
	Job *docdex.Job
}

// CancelJob cancels the active crawl job. An empty JobID targets the
// running job, whichever it is.
type CancelJob struct {
	JobID  string
	Reason string
}

// Query runs a retrieval query, either plain or through the full pipeline.
type Query struct {
	Query       string
	Limit       int
	JobIDs      []string
	Intelligent bool
}

// ClearCache discards all cached query results.
type ClearCache struct{}

// CacheStats requests a result-cache occupancy snapshot.
type CacheStats struct{}

func (StartJob) command()   {}
func (CancelJob) command()  {}
func (Query) command()      {}
func (ClearCache) command() {}
func (CacheStats) command() {}

// JobScheduler is the slice of the crawl scheduler the worker drives.
type JobScheduler interface {
	Start(ctx context.Context, job *docdex.Job) error
	Cancel(jobID, reason string)
}

// Worker dispatches host commands and forwards engine events. Scheduler
// events share the same channel as query events, so the host observes one
// ordered stream.
type Worker struct {
	scheduler JobScheduler
	retrieval docdex.RetrievalService
	events    chan docdex.Event
}

// New creates a Worker with an event channel of the given buffer size.
// Wire Emit as the scheduler's Notify callback so crawl events flow
// through the same channel.
func New(scheduler JobScheduler, retrieval docdex.RetrievalService, buffer int) *Worker {
	return &Worker{
		scheduler: scheduler,
		retrieval: retrieval,
		events:    make(chan docdex.Event, buffer),
	}
}

// Events returns the channel the host consumes.
func (w *Worker) Events() <-chan docdex.Event {
	return w.events
}

// Emit publishes an event to the host. It blocks when the host falls
// behind a full buffer.
func (w *Worker) Emit(event docdex.Event) {
	w.events <- event
}

// Close closes the event channel. Call only after all jobs and queries
// have reached a terminal state.
func (w *Worker) Close() {
	close(w.events)
}

// Dispatch executes one command. Command failures surface as events, not
// returned errors: the host protocol is fire-and-observe.
func (w *Worker) Dispatch(ctx context.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case StartJob:
		if err := w.scheduler.Start(ctx, cmd.Job); err != nil {
			w.Emit(docdex.JobUpdate{
				JobID:  cmd.Job.ID,
				Phase:  docdex.JobError,
				Reason: docdex.ErrorMessage(err),
			})
		}
	case CancelJob:
		w.scheduler.Cancel(cmd.JobID, cmd.Reason)
	case Query:
		w.runQuery(ctx, cmd)
	case ClearCache:
		w.retrieval.ClearCache()
		w.Emit(docdex.CacheStatsEvent{Stats: w.retrieval.CacheStats()})
	case CacheStats:
		w.Emit(docdex.CacheStatsEvent{Stats: w.retrieval.CacheStats()})
	default:
		w.Emit(docdex.WorkerError{Message: fmt.Sprintf("unknown command %T", cmd)})
	}
}

// runQuery emits the staged query progression around the retrieval call:
// started, retrieving, scoring, then completed or failed. A degraded
// pipeline reports failed but still delivers its result.
func (w *Worker) runQuery(ctx context.Context, cmd Query) {
	w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryStarted})
	w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryRetrieving})

	var result *docdex.RetrievalResult
	var err error
	if cmd.Intelligent {
		result, err = w.retrieval.IntelligentRetrieve(ctx, cmd.Query, cmd.Limit, cmd.JobIDs...)
	} else {
		result, err = w.retrieval.Retrieve(ctx, cmd.Query, cmd.Limit, cmd.JobIDs...)
	}
	if err != nil {
		w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryFailed, Reason: docdex.ErrorMessage(err)})
		return
	}

	w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryScoring})
	w.Emit(docdex.QueryResult{Result: result, Intelligent: cmd.Intelligent})

	if result.Degraded {
		w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryFailed, Reason: "llm pipeline degraded"})
		return
	}
	w.Emit(docdex.QueryStatus{Query: cmd.Query, Stage: docdex.QueryCompleted})
}
