package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DirEntry is one name in a directory listing.
type DirEntry struct {
	Name    string
	Regular bool
}

// Lister abstracts directory listing so the engine can be driven by a
// fake in tests.
type Lister interface {
	// List returns every entry in dir. It returns ErrDirectoryNotFound
	// when dir does not exist or is not a directory.
	List(dir string) ([]DirEntry, error)
}

// OSLister reads directories from the real filesystem.
type OSLister struct{}

// List returns the entries of dir. Symlinks are reported as not regular
// even when they point at regular files, so they are never candidates.
func (OSLister) List(dir string) ([]DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	entries := make([]DirEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, DirEntry{
			Name:    item.Name(),
			Regular: item.Type().IsRegular(),
		})
	}
	return entries, nil
}

// Select filters a directory listing down to rename candidates: regular
// files whose lowercased extension is recognized by the policy and whose
// name matches no exclude pattern. The result is sorted by name in byte
// order so repeated runs over an unchanged directory see the same
// sequence.
func Select(dir string, entries []DirEntry, policy Policy) []Candidate {
	var candidates []Candidate
	for _, e := range entries {
		if !e.Regular {
			continue
		}
		if excluded(e.Name, policy.Exclude) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name))
		if !policy.Recognizes(ext) {
			continue
		}
		candidates = append(candidates, Candidate{Dir: dir, Name: e.Name, Ext: ext})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		return strings.Compare(a.Name, b.Name)
	})

	return candidates
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		// Patterns are validated at config load; a bad pattern here
		// simply never matches.
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
