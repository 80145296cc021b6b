package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/export"
	"github.com/fwojciec/headlines/gocache"
	"github.com/fwojciec/headlines/goquery"
	hhttp "github.com/fwojciec/headlines/http"
	"github.com/fwojciec/headlines/scrape"
	hslog "github.com/fwojciec/headlines/slog"
	"github.com/fwojciec/headlines/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the serve command.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("headlines"),
		kong.Description("Extract article listings from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'headlines --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogJSON)
	if err != nil {
		return err
	}
	deps.Logger = logger
	deps.Exporters = export.All()

	extractor := hslog.NewLoggingExtractor(goquery.NewExtractor(), logger)

	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "serve":
		if cli.Serve.CacheTTL < 0 {
			return fmt.Errorf("--cache-ttl must not be negative")
		}

		m.DB = sqlite.NewDB(cli.Serve.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HEADLINES_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.Serve.DB, err)
		}
		defer m.Close()

		fetcher := hslog.NewLoggingFetcher(hhttp.NewFetcher(hhttp.WithTimeout(cli.Serve.FetchTimeout)), logger)
		defer fetcher.Close()

		// A zero TTL disables caching; go-cache would read it as "never expire".
		var cache headlines.ResultCache
		if cli.Serve.CacheTTL > 0 {
			cache = gocache.NewCache(cli.Serve.CacheTTL, 2*cli.Serve.CacheTTL)
		}
		store := hslog.NewLoggingArticleStore(sqlite.NewArticleStore(m.DB), logger)

		server := hhttp.NewServer()
		server.Scraper = hslog.NewLoggingScraper(&scrape.Service{
			Validator: hhttp.NewValidator(cli.Serve.ValidateTimeout),
			Cache:     cache,
			Fetcher:   fetcher,
			Extractor: extractor,
			Store:     store,
			Logger:    logger,
		}, logger)
		server.Store = store
		server.Cache = cache
		server.Limiter = hhttp.NewClientLimiter(
			hhttp.Limit{Requests: cli.Serve.RatePerMinute, Per: time.Minute},
			hhttp.Limit{Requests: cli.Serve.RatePerDay, Per: 24 * time.Hour},
		)
		server.Exporters = deps.Exporters
		server.Logger = logger
		server.AllowedOrigins = cli.Serve.CORSOrigin
		server.TrustProxy = cli.Serve.TrustProxy
		deps.Server = server

	case "scrape":
		if cli.Scrape.Retries < 0 || cli.Scrape.Retries > len(scrape.DefaultRetryDelays()) {
			return fmt.Errorf("--retries must be between 0 and %d", len(scrape.DefaultRetryDelays()))
		}

		fetcher := hslog.NewLoggingFetcher(hhttp.NewFetcher(hhttp.WithTimeout(cli.Scrape.FetchTimeout)), logger)
		defer fetcher.Close()

		deps.Scraper = hslog.NewLoggingScraper(&scrape.Service{
			Fetcher:     fetcher,
			Extractor:   extractor,
			RetryDelays: scrape.DefaultRetryDelays()[:cli.Scrape.Retries],
			Logger:      logger,
		}, logger)
	}

	return kongCtx.Run(deps)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
