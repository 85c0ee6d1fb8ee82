// Package scratch owns the directory that holds uploaded audio for the
// duration of a single relay request.
package scratch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	defaultName   = "upload"
	maxNameLength = 128
	// uuid string form plus the separating dash
	prefixLength = 37
)

// Store hands out transient files under a single directory.
type Store struct {
	dir string
}

// NewStore creates the scratch directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("scratch directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the scratch directory.
func (s *Store) Dir() string {
	return s.dir
}

// Acquire reserves a unique path for an upload named originalName.
// Nothing touches the disk until Write is called.
func (s *Store) Acquire(originalName string) *TransientFile {
	name := uuid.NewString() + "-" + SanitizeName(originalName)
	return &TransientFile{
		path:     filepath.Join(s.dir, name),
		original: originalName,
	}
}

// Sweep removes transient files older than olderThan, e.g. ones orphaned by
// a crash. Files that were not created by Acquire are left alone.
func (s *Store) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read scratch directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !isTransientName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// TransientFile is one request's copy of an uploaded file.
type TransientFile struct {
	path     string
	original string

	releaseOnce sync.Once
	releaseErr  error
}

// Path returns the on-disk location.
func (f *TransientFile) Path() string {
	return f.path
}

// OriginalName returns the filename supplied by the client.
func (f *TransientFile) OriginalName() string {
	return f.original
}

// Write stores data. It refuses to overwrite an existing file.
func (f *TransientFile) Write(data []byte) error {
	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create transient file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("failed to write transient file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close transient file: %w", err)
	}
	return nil
}

// Open returns a read stream over the stored content.
func (f *TransientFile) Open() (io.ReadCloser, error) {
	in, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transient file: %w", err)
	}
	return in, nil
}

// Release deletes the file. It is safe to call more than once and on a file
// that was never written.
func (f *TransientFile) Release() error {
	f.releaseOnce.Do(func() {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			f.releaseErr = fmt.Errorf("failed to remove transient file: %w", err)
		}
	})
	return f.releaseErr
}

// SanitizeName reduces a client supplied filename to a safe base name,
// keeping the extension providers use to detect the audio container.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f, r == '/', r == ':':
			return '_'
		}
		return r
	}, name)
	name = strings.TrimLeft(name, ".")
	name = strings.TrimSpace(name)

	if name == "" {
		return defaultName
	}
	if len(name) > maxNameLength {
		ext := filepath.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		cut := maxNameLength - len(ext)
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut] + ext
	}
	return name
}

func isTransientName(name string) bool {
	if len(name) <= prefixLength || name[prefixLength-1] != '-' {
		return false
	}
	_, err := uuid.Parse(name[:prefixLength-1])
	return err == nil
}
