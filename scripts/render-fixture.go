// render-fixture runs one saved event page through extraction, normalization and
// serialization, and writes the result for import into a calendar app.
//
// Usage: go run ./scripts/render-fixture.go [detail.html] [out.ics]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/calendar"
	"github.com/pfrederiksen/ufc-events/internal/config"
	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/scraper"
)

const fixtureURL = "https://www.ufc.com/event/fixture"

func main() {
	in := "testdata/fixtures/event_detail.html"
	out := "test-ufc-event.ics"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	html, err := os.ReadFile(in)
	if err != nil {
		fail("reading fixture", err)
	}

	fetcher := scraper.FetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
		return string(html), nil
	})
	sc, err := scraper.New(fetcher, config.DefaultOrigin)
	if err != nil {
		fail("creating scraper", err)
	}

	rec, err := sc.FetchEvent(context.Background(), fixtureURL)
	if err != nil {
		fail("extracting event", err)
	}

	cfg := config.Default()
	loc, err := cfg.Location()
	if err != nil {
		fail("loading timezone", err)
	}
	now := time.Now()
	evt, err := event.Normalize(rec, now, loc)
	if err != nil {
		fail("normalizing event", err)
	}

	icsContent, err := calendar.GenerateICS([]event.NormalizedEvent{evt}, cfg.CalendarName, now)
	if err != nil {
		fail("generating calendar", err)
	}

	// Write to file (owner read/write only)
	if err := os.WriteFile(out, []byte(icsContent), 0600); err != nil {
		fail("writing file", err)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", out)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
