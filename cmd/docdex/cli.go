package main

import (
	"context"
	"io"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/worker"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Index     docdex.VectorIndex
	Retrieval docdex.RetrievalService
	Scheduler *crawl.Scheduler
	Worker    *worker.Worker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Crawl      CrawlCmd      `cmd:"" help:"Crawl a documentation site into the index"`
	Query      QueryCmd      `cmd:"" help:"Query indexed documentation"`
	Info       InfoCmd       `cmd:"" help:"Show index contents"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Discard cached query results"`
	ClearJob   ClearJobCmd   `cmd:"" name:"clear-job" help:"Remove a job's chunks from the index"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL            []string `arg:"" help:"Seed URLs"`
	Depth          int      `short:"d" default:"2" help:"Maximum link depth from the seeds"`
	MaxPages       int      `short:"n" default:"50" help:"Page budget for the job"`
	FollowExternal bool     `help:"Follow links to other hosts"`
	Concurrency    int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Text        string   `arg:"" help:"Query text"`
	Limit       int      `short:"n" default:"5" help:"Maximum results"`
	Job         []string `short:"j" help:"Restrict to job IDs (repeatable)"`
	Intelligent bool     `short:"i" help:"Run the full LLM pipeline (rerank, answers, summaries)"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct{}

// ClearJobCmd is the "clear-job" subcommand.
type ClearJobCmd struct {
	JobID string `arg:"" help:"Job ID to remove"`
}
