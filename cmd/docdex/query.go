package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/worker"
)

// Run executes the query command over the worker's event stream.
func (c *QueryCmd) Run(deps *Dependencies) error {
	deps.Worker.Dispatch(deps.Ctx, worker.Query{
		Query:       c.Text,
		Limit:       c.Limit,
		JobIDs:      c.Job,
		Intelligent: c.Intelligent,
	})

	delivered := false
	for event := range deps.Worker.Events() {
		switch e := event.(type) {
		case docdex.QueryResult:
			delivered = true
			printResult(deps.Stdout, e.Result)
		case docdex.QueryStatus:
			switch e.Stage {
			case docdex.QueryCompleted:
				return nil
			case docdex.QueryFailed:
				if delivered {
					// Degraded pipeline: data was shown, note why it is partial.
					fmt.Fprintf(deps.Stderr, "warning: %s\n", e.Reason)
					return nil
				}
				fmt.Fprintf(deps.Stderr, "error: %s\n", e.Reason)
				return docdex.Errorf(docdex.EINTERNAL, "query failed: %s", e.Reason)
			}
		}
	}
	return nil
}

func printResult(w io.Writer, result *docdex.RetrievalResult) {
	if result.FromCache {
		fmt.Fprintln(w, "(cached)")
	}
	if len(result.Results) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	for i, rc := range result.Results {
		fmt.Fprintf(w, "%d. [%.3f] %s", i+1, rc.Score, rc.Chunk.SourceURL)
		if len(rc.Chunk.HeadingPath) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(rc.Chunk.HeadingPath, " > "))
		}
		fmt.Fprintln(w)

		if rc.Answer != nil {
			fmt.Fprintf(w, "   answer: %s (confidence %.2f)\n", rc.Answer.Text, rc.Answer.Confidence)
		}
		if rc.Summary != "" {
			fmt.Fprintf(w, "   %s\n", rc.Summary)
		} else {
			fmt.Fprintf(w, "   %s\n", excerpt(rc.Chunk.Text, 200))
		}
		for _, block := range rc.CodeBlocks {
			lang := block.Language
			if lang == "" {
				lang = "code"
			}
			fmt.Fprintf(w, "   [%s] %s\n", lang, excerpt(block.Code, 120))
		}
	}
}

// excerpt shortens text to maxLen runes on a single line.
func excerpt(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
