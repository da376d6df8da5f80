package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Sink receives the full outcome table on export.
type Sink interface {
	Write(outcomes []Outcome) error
}

// WriterSink writes the table to an io.Writer.
type WriterSink struct {
	W io.Writer
}

// Write implements Sink.
func (s WriterSink) Write(outcomes []Outcome) error {
	return WriteTable(s.W, outcomes)
}

// FileSink writes the table to {Dir}/{Prefix}_{timestamp}.csv. The file is
// written under a temporary name and renamed into place, so a failed export
// never leaves a partial table behind.
type FileSink struct {
	Dir    string
	Prefix string
	// Now stamps the file name; defaults to time.Now.
	Now func() time.Time

	path string
}

// NewFileSink creates a FileSink for dir and prefix.
func NewFileSink(dir, prefix string) *FileSink {
	return &FileSink{Dir: dir, Prefix: prefix, Now: time.Now}
}

// Write implements Sink.
func (s *FileSink) Write(outcomes []Outcome) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", s.Prefix, now().Format("20060102-150405"))
	final := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	// CreateTemp opens 0600; the table is meant to be shared like any other data file.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set export file permissions: %w", err)
	}
	if err := WriteTable(tmp, outcomes); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("failed to move export file into place: %w", err)
	}

	s.path = final
	return nil
}

// Path returns the file written by the last successful Write.
func (s *FileSink) Path() string {
	return s.path
}
