package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"github.com/pfrederiksen/ufc-events/internal/metrics"
)

// Detail page markup
const (
	titlePrefixSelector = ".field--name-node-title h1"
	topDividerSelector  = "span.e-divider__top"
	bottomDivSelector   = "span.e-divider__bottom"
	venueSelector       = "div.field--name-venue"
	timestampAttr       = "data-timestamp"
	placeholder         = "TBD"
)

var commaSpacing = regexp.MustCompile(`\s*,\s*`)

// parseEvent extracts one Record from a detail page. The record is rejected with an
// ErrExtraction when no card segment carries a timestamp. Segment notes that cannot be
// formatted are logged and left empty.
func (s *Scraper) parseEvent(r io.Reader, pageURL string) (event.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return event.Record{}, fmt.Errorf("parsing HTML: %w", err)
	}

	rec := event.Record{
		Headline: parseHeadline(doc),
		Location: parseLocation(doc),
		URL:      pageURL,
	}

	log := s.log.With(logger.Fields{"event_url": pageURL})
	for _, kind := range event.StartPriority {
		ts, err := segmentTimestamp(doc, kind)
		if err != nil {
			log.Warn("Ignoring card segment timestamp", logger.Fields{"segment": kind.Label()}, err)
			continue
		}
		rec.Segment(kind).Time = ts
	}

	if err := rec.ResolveSchedule(); err != nil {
		return event.Record{}, fmt.Errorf("%w: %s: %v", ErrExtraction, pageURL, err)
	}

	for _, kind := range event.NotesOrder {
		seg := rec.Segment(kind)
		if !seg.Present() {
			continue
		}
		bouts, err := FormatFightCard(doc, kind, seg)
		if err != nil {
			s.metrics.Segments.WithLabelValues(kind.Label(), metrics.ResultError).Inc()
			log.Warn("Fight card not formatted", logger.Fields{"segment": kind.Label()}, err)
			continue
		}
		s.metrics.Segments.WithLabelValues(kind.Label(), metrics.ResultOK).Inc()
		s.metrics.Bouts.Add(float64(bouts))
		log.Debug("Fight card formatted", logger.Fields{"segment": kind.Label(), "bouts": bouts})
	}

	return rec, nil
}

// parseHeadline builds "{prefix}: {top} vs. {bottom}" with TBD for missing parts
func parseHeadline(doc *goquery.Document) string {
	prefix := textOr(doc.Find(titlePrefixSelector).First(), placeholder)
	top := textOr(doc.Find(topDividerSelector).First(), placeholder)
	bottom := textOr(doc.Find(bottomDivSelector).First(), placeholder)
	return fmt.Sprintf("%s: %s vs. %s", prefix, top, bottom)
}

// parseLocation collapses whitespace between venue fields and puts one space after each comma
func parseLocation(doc *goquery.Document) string {
	venue := strings.Join(strings.Fields(doc.Find(venueSelector).First().Text()), " ")
	return commaSpacing.ReplaceAllString(venue, ", ")
}

// segmentTimestamp reads the data-timestamp attribute for a segment. A missing
// attribute yields a zero Timestamp; a malformed one is an error.
func segmentTimestamp(doc *goquery.Document, kind event.SegmentKind) (event.Timestamp, error) {
	markup, ok := segmentMarkups[kind]
	if !ok {
		return "", fmt.Errorf("unknown card segment %d", int(kind))
	}
	raw, ok := doc.Find(markup.timestamp).First().Attr(timestampAttr)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return "", nil
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parsing %s %q: %w", timestampAttr, raw, err)
	}
	return event.TimestampFromUnix(sec), nil
}

func textOr(sel *goquery.Selection, fallback string) string {
	if text := strings.TrimSpace(sel.Text()); text != "" {
		return text
	}
	return fallback
}
