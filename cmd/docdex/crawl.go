package main

import (
	"fmt"
	"strings"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/worker"
	"github.com/google/uuid"
)

// Run executes the crawl command. It dispatches the job through the worker
// and renders the event stream until the job reaches a terminal phase.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	job := &docdex.Job{
		ID:             uuid.NewString()[:8],
		SeedURLs:       c.URL,
		MaxDepth:       c.Depth,
		MaxPages:       c.MaxPages,
		FollowExternal: c.FollowExternal,
		Concurrency:    c.Concurrency,
	}

	deps.Worker.Dispatch(deps.Ctx, worker.StartJob{Job: job})

	for event := range deps.Worker.Events() {
		switch e := event.(type) {
		case docdex.PageProgress:
			switch e.Stage {
			case docdex.StageFetching:
				fmt.Fprintf(deps.Stdout, "  fetch %s\n", e.URL)
			case docdex.StageSkipped:
				fmt.Fprintf(deps.Stdout, "  skip  %s (%s)\n", e.URL, e.Reason)
			case docdex.StageFailed:
				fmt.Fprintf(deps.Stderr, "  fail  %s: %s\n", e.URL, e.Reason)
			}
		case docdex.PageResult:
			fmt.Fprintf(deps.Stdout, "  done  %s (%d chunks)\n", e.URL, len(e.Chunks))
		case docdex.JobUpdate:
			switch e.Phase {
			case docdex.JobRunning:
				fmt.Fprintf(deps.Stdout, "Crawling %s (job %s)\n", strings.Join(c.URL, ", "), job.ID)
			case docdex.JobCompleted:
				fmt.Fprintf(deps.Stdout, "Job %s completed: %d pages processed, %d discovered\n", e.JobID, e.Processed, e.Discovered)
				return nil
			case docdex.JobCancelled:
				fmt.Fprintf(deps.Stdout, "Job %s cancelled: %s\n", e.JobID, e.Reason)
				return nil
			case docdex.JobError:
				return docdex.Errorf(docdex.EINTERNAL, "job %s failed: %s", e.JobID, e.Reason)
			}
		}
	}
	return nil
}
