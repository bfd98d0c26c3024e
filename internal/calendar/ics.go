// Package calendar serializes normalized events into an iCalendar (.ics) document.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
)

const (
	prodID = "-//UFC Events//ufc-events//EN"

	// maxLineOctets is the RFC 5545 content line limit before folding
	maxLineOctets = 75
)

var (
	// ErrSerialization marks a normalized event set that cannot be written as a calendar
	ErrSerialization = errors.New("calendar serialization failed")
	// ErrNoEvents is returned for an empty event set
	ErrNoEvents = fmt.Errorf("%w: no events", ErrSerialization)
)

// GenerateICS renders events as one VCALENDAR named calName. now is used for DTSTAMP.
// An empty set or an event without a title or valid start is rejected.
func GenerateICS(events []event.NormalizedEvent, calName string, now time.Time) (string, error) {
	if len(events) == 0 {
		return "", ErrNoEvents
	}

	var ics strings.Builder
	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:"+prodID)
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	if calName != "" {
		writeLine(&ics, "X-WR-CALNAME:"+escapeICS(calName))
	}

	stamp := formatICSTime(now)
	for i, evt := range events {
		if err := writeEvent(&ics, evt, stamp); err != nil {
			return "", fmt.Errorf("%w: event %d (%s): %v", ErrSerialization, i, evt.URL, err)
		}
	}

	writeLine(&ics, "END:VCALENDAR")
	return ics.String(), nil
}

func writeEvent(ics *strings.Builder, evt event.NormalizedEvent, stamp string) error {
	if strings.TrimSpace(evt.Title) == "" {
		return errors.New("missing title")
	}
	if _, err := evt.Start.Time(); err != nil {
		return err
	}
	if evt.Duration.Hours < 0 || evt.Duration.Minutes < 0 {
		return fmt.Errorf("negative duration %+v", evt.Duration)
	}

	uid := evt.UID
	if uid == "" {
		uid = event.UID(evt.URL + "|" + evt.Title + "|" + string(evt.Start))
	}

	writeLine(ics, "BEGIN:VEVENT")
	writeLine(ics, "UID:"+uid)
	writeLine(ics, "DTSTAMP:"+stamp)
	writeLine(ics, "DTSTART:"+string(evt.Start))
	writeLine(ics, "DURATION:"+formatDuration(evt.Duration))
	writeLine(ics, "SUMMARY:"+escapeICS(evt.Title))
	if evt.Description != "" {
		writeLine(ics, "DESCRIPTION:"+escapeICS(evt.Description))
	}
	if evt.Location != "" {
		writeLine(ics, "LOCATION:"+escapeICS(evt.Location))
	}
	if evt.URL != "" {
		writeLine(ics, "URL:"+evt.URL)
	}
	if evt.Status != "" {
		writeLine(ics, "STATUS:"+evt.Status)
	}
	if evt.BusyStatus == event.BusyStatusFree {
		writeLine(ics, "TRANSP:TRANSPARENT")
	} else {
		writeLine(ics, "TRANSP:OPAQUE")
	}
	if evt.BusyStatus != "" {
		writeLine(ics, "X-MICROSOFT-CDO-BUSYSTATUS:"+evt.BusyStatus)
	}
	writeLine(ics, "END:VEVENT")
	return nil
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format(event.TimestampLayout)
}

// formatDuration renders an RFC 5545 duration such as PT3H or PT1H30M
func formatDuration(d event.Duration) string {
	if d.Hours == 0 && d.Minutes == 0 {
		return "PT0S"
	}
	var b strings.Builder
	b.WriteString("PT")
	if d.Hours > 0 {
		fmt.Fprintf(&b, "%dH", d.Hours)
	}
	if d.Minutes > 0 {
		fmt.Fprintf(&b, "%dM", d.Minutes)
	}
	return b.String()
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine writes one content line, folding it at 75 octets without splitting a rune
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines carry a leading space
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
