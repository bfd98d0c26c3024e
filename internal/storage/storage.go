package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage handles persistence of the serialized calendar
type Storage struct {
	path string
}

// New creates a new Storage instance writing to path
func New(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &Storage{
		path: filepath.Clean(path),
	}, nil
}

// Path returns the resolved output path
func (s *Storage) Path() string {
	return s.path
}

// WriteCalendar replaces the output file with content and returns the number of bytes written
func (s *Storage) WriteCalendar(content string) (int, error) {
	dir := filepath.Dir(s.path)

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	n, err := tmp.WriteString(content)
	if err != nil {
		return 0, fmt.Errorf("writing calendar: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("syncing calendar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing calendar: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return 0, fmt.Errorf("setting calendar permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return 0, fmt.Errorf("replacing %s: %w", s.path, err)
	}
	committed = true

	return n, nil
}
