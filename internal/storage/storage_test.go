package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "relative", path: "./exports/UFC.ics", want: "exports/UFC.ics"},
		{name: "home expansion", path: "~/calendars/UFC.ics", want: filepath.Join(home, "calendars/UFC.ics")},
		{name: "empty", path: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if s.Path() != tt.want {
				t.Errorf("Path() = %q, want %q", s.Path(), tt.want)
			}
		})
	}
}

func TestWriteCalendar_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "exports", "UFC.ics")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	content := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	n, err := s.WriteCalendar(content)
	if err != nil {
		t.Fatalf("WriteCalendar() error: %v", err)
	}
	if n != len(content) {
		t.Errorf("WriteCalendar() = %d bytes, want %d", n, len(content))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != content {
		t.Errorf("output = %q, want %q", data, content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestWriteCalendar_ReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "UFC.ics")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("seeding output: %v", err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := s.WriteCalendar("new"); err != nil {
		t.Fatalf("WriteCalendar() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("output = %q, want %q", data, "new")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the calendar in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteCalendar_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	// The destination is a non-empty directory, so the final rename fails
	path := filepath.Join(dir, "UFC.ics")
	if err := os.MkdirAll(filepath.Join(path, "occupied"), 0755); err != nil {
		t.Fatalf("seeding destination: %v", err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := s.WriteCalendar("BEGIN:VCALENDAR\r\n"); err == nil {
		t.Fatal("WriteCalendar() expected error")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s after failed write", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(path, "occupied")); err != nil {
		t.Errorf("existing destination disturbed: %v", err)
	}
}
