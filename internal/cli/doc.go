// Package cli implements the command-line interface for ufc-events.
//
// The cli package provides the Cobra root command that runs the calendar pipeline
// once: discover event pages, extract and normalize each event, serialize the set
// as an iCalendar file and write it atomically. A run summary is printed to stdout
// as text or JSON; structured logs go to stderr.
package cli
