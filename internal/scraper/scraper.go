package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"github.com/pfrederiksen/ufc-events/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight retrievals when WithConcurrency is not given
const DefaultConcurrency = 8

// Scraper discovers and extracts UFC events
type Scraper struct {
	fetcher     Fetcher
	origin      *url.URL
	concurrency int
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithConcurrency bounds the number of in-flight page retrievals
func WithConcurrency(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for stage and failure logging
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scraper) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a Scraper that resolves event links against origin
func New(fetcher Fetcher, origin string, opts ...Option) (*Scraper, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return nil, fmt.Errorf("parsing site origin: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("site origin must be absolute: %q", origin)
	}

	s := &Scraper{
		fetcher:     fetcher,
		origin:      u,
		concurrency: DefaultConcurrency,
		log:         logger.Default(),
		metrics:     metrics.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FetchEvent retrieves and extracts a single detail page
func (s *Scraper) FetchEvent(ctx context.Context, pageURL string) (event.Record, error) {
	html, err := s.fetcher.Fetch(ctx, pageURL)
	s.metrics.ObservePage(metrics.KindDetail, err)
	if err != nil {
		return event.Record{}, err
	}
	return s.parseEvent(strings.NewReader(html), pageURL)
}

// CollectEvents discovers every detail page behind listingURLs and extracts them
// concurrently. Pages that fail to fetch or lack a start time are logged and dropped.
// Records are returned in discovery order regardless of completion order.
func (s *Scraper) CollectEvents(ctx context.Context, listingURLs []string) []event.Record {
	urls := s.DiscoverEventURLs(ctx, listingURLs)

	slots := make([]*event.Record, len(urls))
	s.fanOut(ctx, len(urls), func(ctx context.Context, i int) {
		rec, err := s.FetchEvent(ctx, urls[i])
		if err != nil {
			s.metrics.Events.WithLabelValues(metrics.ResultDropped).Inc()
			s.log.Warn("Dropping event", logger.Fields{"event_url": urls[i]}, err)
			return
		}
		s.metrics.Events.WithLabelValues(metrics.ResultOK).Inc()
		s.log.Debug("Event extracted", logger.Fields{
			"event_url":  rec.URL,
			"headline":   rec.Headline,
			"start_time": string(rec.StartTime),
		})
		slots[i] = &rec
	})

	records := make([]event.Record, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}

	s.log.Info("Extracted events", logger.Fields{
		"event_pages": len(urls),
		"events":      len(records),
		"dropped":     len(urls) - len(records),
	})
	return records
}

// fanOut runs task for 0..n-1 with at most s.concurrency in flight and waits for all
// of them. Each task writes only to its own index, so no locking is needed.
func (s *Scraper) fanOut(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			task(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}
