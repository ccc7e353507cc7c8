// Package store implements the append-only text file that records form submissions.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smileynet/interestform/internal/contact"
)

// DefaultPath is the record file used when no path is configured.
const DefaultPath = "contacts.txt"

// Record file layout. EntryMarker is load-bearing: Count searches for it.
const (
	HeaderTitle     = "CONTACT INTEREST FORM SUBMISSIONS"
	EntryMarker     = "Entry"
	Delimiter       = "====================================="
	TimestampLayout = "2006-01-02 15:04:05"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrOpen  = errors.New("store: cannot open record file")
	ErrWrite = errors.New("store: cannot write record file")
)

// maxLineSize bounds a single scanned line; hand-edited files may exceed bufio's default.
const maxLineSize = 1 << 20

// FileStore appends submissions to a plain text file and counts them by rescanning it.
// No file handle outlives a single method call.
type FileStore struct {
	path string
	now  func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock sets the time source used for header and entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the record file path as configured.
func (s *FileStore) Path() string {
	return s.path
}

// AbsPath returns the absolute record file path, or the configured path if it cannot be resolved.
func (s *FileStore) AbsPath() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return s.path
	}
	return abs
}

// EnsureInitialized creates the record file with its header block if it does not exist.
// An existing file is left untouched, so repeated calls are harmless.
func (s *FileStore) EnsureInitialized() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrOpen, s.path, err)
	}

	header := HeaderTitle + "\n" +
		"Generated on: " + s.timestamp() + "\n\n"

	if _, err := f.WriteString(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.path, err)
	}
	return nil
}

// Append validates sub and writes it to the end of the record file as one entry block.
func (s *FileStore) Append(sub contact.Submission) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpen, s.path, err)
	}

	if _, err := f.WriteString(s.entry(sub)); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.path, err)
	}
	return nil
}

// Count returns the number of entry marker lines in the record file.
// Returns (0, false, nil) if the file does not exist yet.
func (s *FileStore) Count() (int, bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %s: %v", ErrOpen, s.path, err)
	}
	defer func() { _ = f.Close() }()

	count := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	for sc.Scan() {
		if strings.TrimSuffix(sc.Text(), "\r") == EntryMarker {
			count++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, true, fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	return count, true, nil
}

// entry renders a submission as a delimited block followed by a blank line.
func (s *FileStore) entry(sub contact.Submission) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	b.WriteString(EntryMarker + "\n")
	b.WriteString("Date/Time: " + s.timestamp() + "\n")
	b.WriteString("Name: " + sub.Name + "\n")
	b.WriteString("Email: " + sub.Email + "\n")
	b.WriteString(Delimiter + "\n\n")
	return b.String()
}

func (s *FileStore) timestamp() string {
	return s.now().Local().Format(TimestampLayout)
}
