package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pfrederiksen/ufc-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// EventSummary is one written calendar entry as reported to the user
type EventSummary struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	Location string    `json:"location,omitempty"`
	URL      string    `json:"url"`
}

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	OutputPath   string         `json:"output_path"`
	Bytes        int            `json:"bytes"`
	CalendarName string         `json:"calendar_name"`
	EventCount   int            `json:"event_count"`
	Events       []EventSummary `json:"events"`
	ShowEvents   bool           `json:"-"`
}

// summarize converts normalized events for output, keeping their order
func summarize(events []event.NormalizedEvent) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, evt := range events {
		start, _ := evt.Start.Time()
		out = append(out, EventSummary{
			Title:    evt.Title,
			Start:    start,
			Location: evt.Location,
			URL:      evt.URL,
		})
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	noun := "events"
	if result.EventCount == 1 {
		noun = "event"
	}
	fmt.Fprintf(w, "Wrote %d %s to %s (%s)\n", result.EventCount, noun, result.OutputPath, humanize.Bytes(uint64(result.Bytes)))

	if result.ShowEvents {
		for _, evt := range result.Events {
			fmt.Fprintf(w, "  %s  %s\n", evt.Start.UTC().Format("2006-01-02 15:04 MST"), evt.Title)
			if evt.Location != "" {
				fmt.Fprintf(w, "       Location: %s\n", evt.Location)
			}
			fmt.Fprintf(w, "       URL: %s\n", evt.URL)
		}
	}

	return nil
}
