package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/watchscout"
	"github.com/fwojciec/watchscout/chrono24"
	"github.com/fwojciec/watchscout/fs"
	"github.com/fwojciec/watchscout/goquery"
	wshttp "github.com/fwojciec/watchscout/http"
	"github.com/fwojciec/watchscout/rod"
	"github.com/fwojciec/watchscout/search"
	wsslog "github.com/fwojciec/watchscout/slog"
	"github.com/fwojciec/watchscout/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default history database path. Set before calling Run().
	DBPath string

	// SQLite database used by the snapshot service, if opened.
	DB *sqlite.DB

	// Fetcher overrides the transport selected by flags. Used by end-to-end tests.
	Fetcher watchscout.Fetcher

	// BaseURL overrides the marketplace search endpoint. Used by end-to-end tests.
	BaseURL string
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
		kong.Name("watchscout"),
		kong.Description("Search a luxury watch marketplace and tabulate the offers"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'watchscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	switch strings.Fields(kongCtx.Command())[0] {
	case "search":
		closeFetcher, err := m.wireSearch(deps, &cli.Search, cli.Verbose)
		if err != nil {
			return err
		}
		defer closeFetcher()
	case "history":
		path := cli.History.DB
		if path == "" {
			path = m.DBPath
		}
		if err := m.openSnapshots(deps, path); err != nil {
			return err
		}
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wireSearch builds the search session from the command's flags.
// The returned function releases the fetcher.
func (m *Main) wireSearch(deps *Dependencies, c *SearchCmd, verbose bool) (func(), error) {
	fetcher := m.Fetcher
	if fetcher == nil {
		if c.Browser {
			f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = wshttp.NewFetcher(wshttp.WithTimeout(c.Timeout))
		}
	}
	if verbose {
		fetcher = wsslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var builderOpts []chrono24.Option
	if m.BaseURL != "" {
		builderOpts = append(builderOpts, chrono24.WithBaseURL(m.BaseURL))
	}

	deps.Aggregator = &search.Aggregator{
		Requests:    chrono24.NewBuilder(builderOpts...),
		Fetcher:     fetcher,
		Counter:     goquery.NewListingCounter(),
		Extractor:   goquery.NewOfferExtractor(),
		Logger:      deps.Logger,
		PageSize:    c.PageSize,
		ProbeDelays: search.ExponentialDelays(c.ProbeRetries, search.DefaultRetryDelays()[0]),
		Concurrency: c.Concurrency,
		Partial:     c.Partial,
	}
	if c.RPS > 0 {
		deps.Aggregator.RateLimiter = search.NewDomainLimiter(c.RPS)
	}

	if c.CSV != "" {
		deps.Exporter = wsslog.NewLoggingExporter(fs.NewCSVExporter(c.CSV), deps.Logger)
	}

	if c.DB != "" {
		if err := m.openSnapshots(deps, c.DB); err != nil {
			_ = fetcher.Close()
			return nil, err
		}
	}

	// Log lines and the indicator share stderr.
	if c.NoProgress || verbose {
		deps.Progress = nopIndicator{}
	} else {
		deps.Progress = NewSpinner(deps.Stderr)
	}

	return func() { _ = fetcher.Close() }, nil
}

func (m *Main) openSnapshots(deps *Dependencies, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(deps.Stderr, "Hint: Set WATCHSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Snapshots = wsslog.NewLoggingSnapshotService(sqlite.NewSnapshotService(m.DB), deps.Logger)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("WATCHSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "watchscout.db"
	}
	return filepath.Join(home, ".watchscout", "history.db")
}
