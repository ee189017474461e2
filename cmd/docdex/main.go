package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/docdex/docdex"
	"github.com/docdex/docdex/chunk"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/gemini"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	dochttp "github.com/docdex/docdex/http"
	"github.com/docdex/docdex/retrieve"
	docslog "github.com/docdex/docdex/slog"
	"github.com/docdex/docdex/sqlite"
	"github.com/docdex/docdex/trafilatura"
	"github.com/docdex/docdex/worker"
)

// crawlRPS is the per-domain politeness limit for crawl jobs.
const crawlRPS = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the persistent vector index.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set DOCDEX_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Index = docslog.NewLoggingIndex(sqlite.NewIndex(m.DB), logger)

	// Gemini capabilities degrade to unavailable without an API key.
	client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	embedder := gemini.NewEmbedder(client)

	engine := retrieve.NewEngine(embedder, deps.Index)
	engine.Reranker = gemini.NewReranker(client)
	engine.Answers = gemini.NewAnswerExtractor(client)
	engine.Summaries = gemini.NewSummarizer(client)
	deps.Retrieval = docslog.NewLoggingRetrieval(engine, logger)

	scheduler := &crawl.Scheduler{
		Fetcher:   dochttp.NewFetcher(dochttp.WithUserAgent(docdex.DefaultUserAgent)),
		Extractor: trafilatura.NewExtractor(),
		Fallback:  goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Links:     goquery.NewLinks(),
		Chunker:   chunk.NewSplitter(),
		Embedder:  embedder,
		Index:     deps.Index,
		Seeds:     dochttp.NewSitemapExpander(nil),
		Limiter:   crawl.NewDomainLimiter(crawlRPS),
	}

	deps.Worker = worker.New(scheduler, deps.Retrieval, 256)
	scheduler.Notify = deps.Worker.Emit
	deps.Scheduler = scheduler

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docdex.db"
	}
	dir := filepath.Join(home, ".docdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docdex.db")
}
