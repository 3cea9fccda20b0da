package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/watchscout"
	"github.com/fwojciec/watchscout/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Aggregator *search.Aggregator
	Exporter   watchscout.OfferExporter
	Snapshots  watchscout.SnapshotService
	Progress   Indicator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and retries to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search marketplace listings for a watch reference"`
	History HistoryCmd `cmd:"" help:"List saved search snapshots"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term         string        `arg:"" help:"Watch reference or model to search for"`
	All          bool          `short:"a" help:"Fetch every result page instead of only the first"`
	CSV          string        `name:"csv" placeholder:"FILE" help:"Write name and price of every offer to a CSV file"`
	DB           string        `name:"db" env:"WATCHSCOUT_DB" placeholder:"PATH" help:"Save the session to a snapshot history database"`
	Browser      bool          `short:"b" help:"Fetch pages with headless Chrome instead of plain HTTP"`
	Timeout      time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	PageSize     int           `default:"120" help:"Listings per result page"`
	ProbeRetries int           `default:"3" help:"Re-fetches when the listing count is missing"`
	Concurrency  int           `short:"c" default:"1" help:"Result pages fetched at once"`
	Partial      bool          `help:"Skip failed pages instead of aborting"`
	RPS          float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables limiting)"`
	NoProgress   bool          `help:"Hide the progress indicator"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Term  string `help:"Only list snapshots for this search term"`
	Limit int    `short:"n" default:"20" help:"Maximum snapshots to list"`
	DB    string `name:"db" env:"WATCHSCOUT_DB" placeholder:"PATH" help:"Snapshot history database"`
}
