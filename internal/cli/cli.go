package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pfrederiksen/ufc-events/internal/calendar"
	"github.com/pfrederiksen/ufc-events/internal/config"
	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"github.com/pfrederiksen/ufc-events/internal/metrics"
	"github.com/pfrederiksen/ufc-events/internal/scraper"
	"github.com/pfrederiksen/ufc-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// ErrNoEvents is returned when a run ends with nothing to write
var ErrNoEvents = errors.New("no events to write")

type options struct {
	configPath string
	outputPath string
	format     string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ufc-events",
		Short: "Build an iCalendar file of upcoming UFC events",
		Long: `A CLI tool that scrapes the UFC events listing, extracts every event's
card segments and fight card, and writes them as one .ics calendar.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, opts)
		},
	}

	// Define flags
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (defaults are used when empty)")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "Override the calendar output path")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatText), "Summary format: text or json")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and list written events")

	return cmd
}

// runCalendar is the main command logic
func runCalendar(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.outputPath != "" {
		cfg.OutputPath = opts.outputPath
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	fetcher := scraper.NewHTTPFetcher(
		scraper.WithUserAgent(cfg.HTTP.UserAgent),
		scraper.WithTimeout(cfg.HTTP.Timeout),
		scraper.WithRetries(cfg.HTTP.MaxRetries, cfg.HTTP.Backoff, cfg.HTTP.MaxBackoff),
	)

	p := &pipeline{
		cfg:     cfg,
		fetcher: fetcher,
		now:     time.Now,
		log:     log,
		metrics: metrics.New(),
	}

	result, err := p.run(cmd.Context())
	if err != nil {
		return err
	}
	result.ShowEvents = opts.verbose

	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// pipeline holds the collaborators of one calendar run
type pipeline struct {
	cfg     *config.Config
	fetcher scraper.Fetcher
	now     func() time.Time
	log     *logger.Logger
	metrics *metrics.Metrics
}

// run executes discovery, extraction, normalization, serialization and the write.
// Nothing is written unless every top-level step succeeds.
func (p *pipeline) run(ctx context.Context) (result *OutputResult, err error) {
	started := p.now()
	defer func() {
		p.metrics.ObserveRun(started, err == nil)
		p.writeMetrics()
	}()

	loc, err := p.cfg.Location()
	if err != nil {
		return nil, err
	}

	sc, err := scraper.New(p.fetcher, p.cfg.SiteOrigin,
		scraper.WithConcurrency(p.cfg.Concurrency),
		scraper.WithLogger(p.log),
		scraper.WithMetrics(p.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing scraper: %w", err)
	}

	p.log.Info("Starting calendar run", logger.Fields{
		"listing_pages": len(p.cfg.ListingURLs),
		"output":        p.cfg.OutputPath,
		"concurrency":   p.cfg.Concurrency,
	})

	records := sc.CollectEvents(ctx, p.cfg.ListingURLs)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}
	if len(records) == 0 {
		p.log.Error("No events extracted", nil, ErrNoEvents)
		return nil, ErrNoEvents
	}

	now := p.now()
	events := make([]event.NormalizedEvent, 0, len(records))
	for _, rec := range records {
		evt, err := event.Normalize(rec, now, loc)
		if err != nil {
			p.log.Warn("Skipping event that failed normalization", logger.Fields{"url": rec.URL}, err)
			p.metrics.Events.WithLabelValues(metrics.ResultDropped).Inc()
			continue
		}
		events = append(events, evt)
	}
	if len(events) == 0 {
		p.log.Error("No events survived normalization", logger.Fields{"extracted": len(records)}, ErrNoEvents)
		return nil, ErrNoEvents
	}
	sortEvents(events)

	p.log.Info("Normalized events", logger.Fields{
		"extracted":  len(records),
		"normalized": len(events),
	})

	ics, err := calendar.GenerateICS(events, p.cfg.CalendarName, now)
	if err != nil {
		p.log.Error("Calendar serialization failed", logger.Fields{"events": len(events)}, err)
		return nil, fmt.Errorf("serializing calendar: %w", err)
	}

	store, err := storage.New(p.cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	n, err := store.WriteCalendar(ics)
	if err != nil {
		p.log.Error("Calendar write failed", logger.Fields{"path": store.Path()}, err)
		return nil, fmt.Errorf("writing calendar: %w", err)
	}

	p.log.Info("Wrote calendar", logger.Fields{
		"path":   store.Path(),
		"events": len(events),
		"size":   humanize.Bytes(uint64(n)),
	})

	return &OutputResult{
		GeneratedAt:  now.UTC(),
		OutputPath:   store.Path(),
		Bytes:        n,
		CalendarName: p.cfg.CalendarName,
		EventCount:   len(events),
		Events:       summarize(events),
	}, nil
}

func (p *pipeline) writeMetrics() {
	if p.cfg.MetricsTextfile == "" {
		return
	}
	if err := p.metrics.WriteTextfile(p.cfg.MetricsTextfile); err != nil {
		p.log.Warn("Failed to write metrics textfile", logger.Fields{"path": p.cfg.MetricsTextfile}, err)
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
