package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
	hhttp "github.com/fwojciec/headlines/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Scraper   headlines.Scraper
	Exporters []headlines.Exporter
	Server    *hhttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"HEADLINES_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogJSON  bool   `name:"log-json" env:"HEADLINES_LOG_JSON" help:"Write logs as JSON"`

	Serve  ServeCmd  `cmd:"" help:"Serve the web interface and JSON API"`
	Scrape ScrapeCmd `cmd:"" help:"Extract articles from one or more pages and print them"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr            string        `default:":8080" env:"HEADLINES_ADDR" help:"Listen address"`
	DB              string        `name:"db" default:":memory:" env:"HEADLINES_DB" help:"SQLite database path"`
	FetchTimeout    time.Duration `default:"10s" env:"HEADLINES_FETCH_TIMEOUT" help:"Page fetch timeout"`
	ValidateTimeout time.Duration `default:"5s" env:"HEADLINES_VALIDATE_TIMEOUT" help:"URL reachability check timeout"`
	CacheTTL        time.Duration `name:"cache-ttl" default:"5m" env:"HEADLINES_CACHE_TTL" help:"How long scrape results are cached (0 disables caching)"`
	RatePerMinute   int           `default:"10" env:"HEADLINES_RATE_PER_MINUTE" help:"Scrapes allowed per client per minute (0 disables)"`
	RatePerDay      int           `default:"100" env:"HEADLINES_RATE_PER_DAY" help:"Scrapes allowed per client per day (0 disables)"`
	CORSOrigin      []string      `name:"cors-origin" env:"HEADLINES_CORS_ORIGINS" help:"Allowed CORS origin (repeatable)"`
	TrustProxy      bool          `env:"HEADLINES_TRUST_PROXY" help:"Take the client address from X-Forwarded-For/X-Real-IP"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs         []string      `arg:"" name:"url" help:"Page URLs to scrape"`
	Format       string        `short:"f" enum:"json,csv" default:"json" help:"Output format (json, csv)"`
	FetchTimeout time.Duration `default:"10s" help:"Page fetch timeout"`
	Concurrency  int           `short:"c" default:"4" help:"Concurrent scrape limit"`
	Retries      int           `default:"0" help:"Retries for transient fetch failures (0-3)"`
	Output       string        `short:"o" type:"path" help:"Write the export into this directory instead of stdout"`
}
