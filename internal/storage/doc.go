// Package storage writes the serialized calendar to its output location.
//
// Writes are all-or-nothing: content goes to a temporary file in the target
// directory and is renamed over the destination only after a successful sync,
// so a failed run leaves any previous calendar untouched.
// The default output location is ./exports/UFC.ics.
package storage
