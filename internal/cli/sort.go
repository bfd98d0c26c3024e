package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/ufc-events/internal/event"
)

// sortEvents orders events by start time, then title, so output is stable
// regardless of the order extraction finished in
func sortEvents(events []event.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return compareEvents(events[i], events[j])
	})
}

// compareEvents returns true if event i should come before event j
func compareEvents(i, j event.NormalizedEvent) bool {
	startI, errI := i.Start.Time()
	startJ, errJ := j.Start.Time()

	// If both starts are valid, compare them
	if errI == nil && errJ == nil && !startI.Equal(startJ) {
		return startI.Before(startJ)
	}

	// If only one start is valid, put the valid one first
	if errI == nil && errJ != nil {
		return true
	}
	if errI != nil && errJ == nil {
		return false
	}

	titleI, titleJ := strings.ToLower(i.Title), strings.ToLower(j.Title)
	if titleI != titleJ {
		return titleI < titleJ
	}
	return i.URL < j.URL
}
