package event

import (
	"strings"
	"testing"
	"time"
)

func TestDurationBetween(t *testing.T) {
	tests := []struct {
		name  string
		start Timestamp
		end   Timestamp
		want  Duration
	}{
		{"three hours", "20240413T220000Z", "20240414T010000Z", Duration{Hours: 3}},
		{"hours and minutes", "20240413T220000Z", "20240414T034500Z", Duration{Hours: 5, Minutes: 45}},
		{"seconds are truncated", "20240413T220000Z", "20240413T220159Z", Duration{Minutes: 1}},
		{"same instant", "20240413T220000Z", "20240413T220000Z", Duration{}},
		{"end before start", "20240414T010000Z", "20240413T220000Z", Duration{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationBetween(tt.start, tt.end)
			if err != nil {
				t.Fatalf("DurationBetween() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DurationBetween() = %+v, want %+v", got, tt.want)
			}

			again, _ := DurationBetween(tt.start, tt.end)
			if again != got {
				t.Errorf("DurationBetween() not stable: %+v then %+v", got, again)
			}
		})
	}
}

func TestDurationBetween_Malformed(t *testing.T) {
	if _, err := DurationBetween("garbage", "20240413T220000Z"); err == nil {
		t.Error("expected error for malformed start")
	}
	if _, err := DurationBetween("20240413T220000Z", ""); err == nil {
		t.Error("expected error for empty end")
	}
}

func TestLastUpdated(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	summer := time.Date(2024, time.July, 4, 3, 5, 0, 0, time.UTC)
	if got, want := LastUpdated(summer, loc), "July 03, 2024 at 08:05 PM PDT"; got != want {
		t.Errorf("LastUpdated() = %q, want %q", got, want)
	}

	winter := time.Date(2024, time.January, 9, 18, 30, 0, 0, time.UTC)
	if got, want := LastUpdated(winter, loc), "January 09, 2024 at 10:30 AM PST"; got != want {
		t.Errorf("LastUpdated() = %q, want %q", got, want)
	}
}

func TestNormalize(t *testing.T) {
	now := time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
	r := Record{
		Headline:     "UFC 300: Pereira vs. Hill",
		Location:     "T-Mobile Arena, Las Vegas, NV",
		StartTime:    "20240413T220000Z",
		EndTime:      "20240414T050000Z",
		Main:         CardSegment{Time: "20240414T020000Z", Notes: "Main:\nmain bouts\n\n"},
		Prelims:      CardSegment{Time: "20240414T000000Z", Notes: "Prelims:\nprelim bouts\n\n"},
		EarlyPrelims: CardSegment{Time: "20240413T220000Z", Notes: "Early Prelims:\nearly bouts\n\n"},
		URL:          "https://www.ufc.com/event/ufc-300",
	}

	got, err := Normalize(r, now, time.UTC)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if got.Start != r.StartTime {
		t.Errorf("Start = %q, want %q", got.Start, r.StartTime)
	}
	if got.Duration != (Duration{Hours: 7}) {
		t.Errorf("Duration = %+v, want 7h", got.Duration)
	}
	if got.Title != r.Headline || got.Location != r.Location {
		t.Errorf("Title/Location not passed through: %q / %q", got.Title, got.Location)
	}
	if got.Status != "CONFIRMED" || got.BusyStatus != "FREE" {
		t.Errorf("Status = %q, BusyStatus = %q", got.Status, got.BusyStatus)
	}
	if got.UID != UID(r.URL) || got.UID == "" {
		t.Errorf("UID = %q, want stable UID for URL", got.UID)
	}

	wantDesc := "Main:\nmain bouts\n\n" +
		"Prelims:\nprelim bouts\n\n" +
		"Early Prelims:\nearly bouts\n\n" +
		"https://www.ufc.com/event/ufc-300\n\nLast Updated April 01, 2024 at 12:00 PM UTC"
	if got.Description != wantDesc {
		t.Errorf("Description =\n%q\nwant\n%q", got.Description, wantDesc)
	}
}

func TestNormalize_OnlyMainNotes(t *testing.T) {
	r := Record{
		Headline:  "UFC Fight Night: TBD vs. TBD",
		StartTime: "20240413T220000Z",
		EndTime:   "20240414T010000Z",
		Main:      CardSegment{Time: "20240413T220000Z", Notes: "Main:\nbout\n\n"},
		URL:       "https://www.ufc.com/event/x",
	}

	got, err := Normalize(r, time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !strings.HasPrefix(got.Description, "Main:\nbout\n\nhttps://www.ufc.com/event/x\n\nLast Updated ") {
		t.Errorf("unexpected description: %q", got.Description)
	}
	if strings.Contains(got.Description, "Prelims") {
		t.Errorf("description should not mention absent segments: %q", got.Description)
	}
}

func TestUID_Stable(t *testing.T) {
	a := UID("https://www.ufc.com/event/ufc-300")
	b := UID("https://www.ufc.com/event/ufc-300")
	c := UID("https://www.ufc.com/event/ufc-301")
	if a != b {
		t.Errorf("UID not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("UID collision for different URLs: %q", a)
	}
}
