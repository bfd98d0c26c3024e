package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "CONFIRMED"
	BusyStatusFree  = "FREE"

	// LastUpdatedLayout renders e.g. "October 18, 2026 at 03:04 PM PDT"
	LastUpdatedLayout = "January 02, 2006 at 03:04 PM MST"
)

// Duration is the length of an event split into whole hours and remaining minutes
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NormalizedEvent is the calendar-ready shape of a Record
type NormalizedEvent struct {
	UID         string    `json:"uid"`
	Start       Timestamp `json:"start"`
	Duration    Duration  `json:"duration"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	URL         string    `json:"url,omitempty"`
	Status      string    `json:"status"`
	BusyStatus  string    `json:"busy_status"`
}

// DurationBetween returns the non-negative span between start and end.
// An end before the start yields a zero Duration.
func DurationBetween(start, end Timestamp) (Duration, error) {
	s, err := start.Time()
	if err != nil {
		return Duration{}, fmt.Errorf("start: %w", err)
	}
	e, err := end.Time()
	if err != nil {
		return Duration{}, fmt.Errorf("end: %w", err)
	}

	d := e.Sub(s)
	if d < 0 {
		return Duration{}, nil
	}
	return Duration{
		Hours:   int(d / time.Hour),
		Minutes: int((d % time.Hour) / time.Minute),
	}, nil
}

// LastUpdated renders now in loc for the description footer
func LastUpdated(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(LastUpdatedLayout)
}

// UID returns a stable calendar identifier for an event page URL
func UID(pageURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(pageURL)).String()
}

// Normalize maps a Record into a NormalizedEvent. now and loc drive the
// "Last Updated" footer of the description.
func Normalize(r Record, now time.Time, loc *time.Location) (NormalizedEvent, error) {
	dur, err := DurationBetween(r.StartTime, r.EndTime)
	if err != nil {
		return NormalizedEvent{}, fmt.Errorf("computing duration for %s: %w", r.URL, err)
	}

	return NormalizedEvent{
		UID:         UID(r.URL),
		Start:       r.StartTime,
		Duration:    dur,
		Title:       r.Headline,
		Description: Description(r, now, loc),
		Location:    r.Location,
		URL:         r.URL,
		Status:      StatusConfirmed,
		BusyStatus:  BusyStatusFree,
	}, nil
}

// Description concatenates the segment notes (main first), the source URL and the
// Last Updated footer.
func Description(r Record, now time.Time, loc *time.Location) string {
	var b strings.Builder
	for _, kind := range NotesOrder {
		if seg := r.Segment(kind); seg.Notes != "" {
			b.WriteString(seg.Notes)
		}
	}
	b.WriteString(r.URL)
	b.WriteString("\n\nLast Updated ")
	b.WriteString(LastUpdated(now, loc))
	return b.String()
}
