// Package scan inventories audio files in a directory: per-file size
// and, for WAV files, duration. The report answers "how much data do I
// actually have" before any renaming or training work starts.
package scan

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/colonyops/audiotidy/internal/core/rename"
)

// DurationState classifies the outcome of a duration probe, so callers
// can tell "format not supported" apart from a read failure.
type DurationState string

// Probe states.
const (
	DurationKnown         DurationState = "known"
	DurationNotApplicable DurationState = "not_applicable"
	DurationError         DurationState = "error"
)

// Duration is the typed result of probing one file's play time.
type Duration struct {
	Seconds float64
	State   DurationState
	Err     error
}

// Entry is the collected metadata for one audio file.
type Entry struct {
	Name     string
	Ext      string
	SizeKB   float64
	Duration Duration
}

// Scanner walks a directory and collects audio file metadata.
type Scanner struct {
	Lister rename.Lister
	Log    zerolog.Logger
}

// Scan returns one entry per recognized audio file in dir, in the same
// deterministic order the rename engine would process them.
func (s *Scanner) Scan(dir string, policy rename.Policy) ([]Entry, error) {
	listing, err := s.Lister.List(dir)
	if err != nil {
		return nil, err
	}

	candidates := rename.Select(dir, listing, policy)

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		e := Entry{Name: c.Name, Ext: c.Ext}

		info, err := os.Stat(c.Path())
		if err != nil {
			s.Log.Warn().Str("file", c.Name).Err(err).Msg("stat failed, skipping")
			continue
		}
		e.SizeKB = roundKB(info.Size())

		if c.Ext == ".wav" {
			e.Duration = probeWAV(c.Path())
			if e.Duration.State == DurationError {
				s.Log.Warn().Str("file", c.Name).Err(e.Duration.Err).Msg("could not read duration")
			}
		} else {
			e.Duration = Duration{State: DurationNotApplicable}
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// WriteReport writes the entries as a CSV report with a fixed header.
// Unknown durations are recorded as empty cells.
func WriteReport(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "extension", "size_kb", "duration_sec"}); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, e := range entries {
		duration := ""
		if e.Duration.State == DurationKnown {
			duration = strconv.FormatFloat(e.Duration.Seconds, 'f', 2, 64)
		}
		row := []string{
			e.Name,
			e.Ext,
			strconv.FormatFloat(e.SizeKB, 'f', 2, 64),
			duration,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Totals sums the scanned entries for the summary log line.
func Totals(entries []Entry) (files int, sizeKB, durationSec float64) {
	for _, e := range entries {
		files++
		sizeKB += e.SizeKB
		if e.Duration.State == DurationKnown {
			durationSec += e.Duration.Seconds
		}
	}
	return files, sizeKB, durationSec
}

func roundKB(bytes int64) float64 {
	kb := float64(bytes) / 1024
	return float64(int64(kb*100+0.5)) / 100
}
