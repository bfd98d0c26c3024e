package event

import (
	"fmt"
	"time"
)

// TimestampLayout is the fixed-width UTC layout used for every event time.
const TimestampLayout = "20060102T150405Z"

// MainCardRuntime is how long after the main card starts an event is assumed to end.
// The site publishes no end time, so this is a content policy rather than a measured value.
const MainCardRuntime = 3 * time.Hour

// Timestamp is a UTC instant rendered as YYYYMMDDTHHMMSSZ. The zero value means absent.
type Timestamp string

// TimestampFromUnix converts seconds since the epoch into a Timestamp
func TimestampFromUnix(sec int64) Timestamp {
	return NewTimestamp(time.Unix(sec, 0))
}

// NewTimestamp formats t in UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(TimestampLayout))
}

// IsZero reports whether the timestamp is absent
func (ts Timestamp) IsZero() bool {
	return ts == ""
}

// Time parses the timestamp back into an instant. Fields are read at fixed offsets:
// year 0-3, month 4-5, day 6-7, a literal T, hour 9-10, minute 11-12, second 13-14.
func (ts Timestamp) Time() (time.Time, error) {
	if ts.IsZero() {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(TimestampLayout, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", string(ts), err)
	}
	return t, nil
}

// SegmentKind identifies one of the three sub-schedules of an event card
type SegmentKind int

const (
	EarlyPrelims SegmentKind = iota
	Prelims
	MainCard
)

// StartPriority lists segments in the order they are consulted for the canonical start
// time. The earliest-scheduled segment wins.
var StartPriority = []SegmentKind{EarlyPrelims, Prelims, MainCard}

// NotesOrder lists segments in the order their notes appear in a description.
var NotesOrder = []SegmentKind{MainCard, Prelims, EarlyPrelims}

// Label is the heading printed above a segment's fight notes
func (k SegmentKind) Label() string {
	switch k {
	case EarlyPrelims:
		return "Early Prelims"
	case Prelims:
		return "Prelims"
	case MainCard:
		return "Main"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

func (k SegmentKind) String() string {
	return k.Label()
}

// CardSegment is one sub-schedule of an event. Notes is only filled when Time is present.
type CardSegment struct {
	Time  Timestamp `json:"time,omitempty"`
	Notes string    `json:"notes,omitempty"`
}

// Present reports whether the segment has a resolvable time
func (s CardSegment) Present() bool {
	return !s.Time.IsZero()
}

// Record is one event as extracted from its detail page
type Record struct {
	Headline     string      `json:"headline"`
	Location     string      `json:"location"`
	StartTime    Timestamp   `json:"start_time"`
	EndTime      Timestamp   `json:"end_time"`
	Main         CardSegment `json:"main"`
	Prelims      CardSegment `json:"prelims"`
	EarlyPrelims CardSegment `json:"early_prelims"`
	URL          string      `json:"url"`
}

// Segment returns a pointer to the record's segment of the given kind
func (r *Record) Segment(kind SegmentKind) *CardSegment {
	switch kind {
	case EarlyPrelims:
		return &r.EarlyPrelims
	case Prelims:
		return &r.Prelims
	default:
		return &r.Main
	}
}

// ResolveSchedule sets StartTime from the first present segment in StartPriority and
// EndTime to MainCardRuntime after the main card. When the main card has no time the
// end is anchored on the start instead. An error means no segment time is resolvable
// and the record must not be emitted.
func (r *Record) ResolveSchedule() error {
	r.StartTime = ""
	for _, kind := range StartPriority {
		if seg := r.Segment(kind); seg.Present() {
			r.StartTime = seg.Time
			break
		}
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("no card segment has a start time")
	}

	anchor := r.Main.Time
	if anchor.IsZero() {
		anchor = r.StartTime
	}
	t, err := anchor.Time()
	if err != nil {
		return fmt.Errorf("resolving end time: %w", err)
	}
	r.EndTime = NewTimestamp(t.Add(MainCardRuntime))
	return nil
}
