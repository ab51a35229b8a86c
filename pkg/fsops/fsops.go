// Package fsops provides filesystem mutation utilities.
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Mutator performs filesystem renames.
type Mutator interface {
	// Rename moves oldPath to newPath. It fails if newPath already exists.
	Rename(oldPath, newPath string) error
}

// RealMutator calls the actual filesystem.
type RealMutator struct{}

// Rename moves oldPath to newPath, refusing to clobber an existing target.
// os.Rename silently replaces the target on POSIX systems, so the existence
// check happens first. A race between check and rename remains possible and
// surfaces as a plain rename error.
func (RealMutator) Rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("target exists: %s", filepath.Base(newPath))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat target: %w", err)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(oldPath), err)
	}
	return nil
}

// RecordedRename captures a rename that was requested.
type RecordedRename struct {
	OldPath string
	NewPath string
}

// RecordingMutator captures renames for testing without touching the
// filesystem. Configure Errors to control per-source return values.
type RecordingMutator struct {
	mu      sync.Mutex
	Renames []RecordedRename

	// Errors maps old path base names to their error.
	Errors map[string]error
}

// Rename records the request and returns any configured error.
func (m *RecordingMutator) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Renames = append(m.Renames, RecordedRename{OldPath: oldPath, NewPath: newPath})

	if m.Errors != nil {
		return m.Errors[filepath.Base(oldPath)]
	}
	return nil
}
