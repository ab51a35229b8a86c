package rename

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Recorder receives one old-name/new-name row per rename-decision
// entry, in processing order. Implementations are append-only sinks.
type Recorder interface {
	WriteRow(oldName, newName string) error
}

// CSVRecorder writes the mapping table to a CSV file. The header row is
// written on creation and every row is flushed as it arrives, so a run
// that dies mid-way still leaves the rows it completed.
type CSVRecorder struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVRecorder creates (or truncates) the mapping file at path and
// writes the header row.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create mapping file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"old_name", "new_name"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write mapping header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flush mapping header: %w", err)
	}

	return &CSVRecorder{file: f, w: w}, nil
}

// WriteRow appends one mapping row and flushes it.
func (r *CSVRecorder) WriteRow(oldName, newName string) error {
	if err := r.w.Write([]string{oldName, newName}); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

// Close releases the underlying file. Safe to call after a failed run.
func (r *CSVRecorder) Close() error {
	r.w.Flush()
	flushErr := r.w.Error()
	if err := r.file.Close(); err != nil {
		return err
	}
	return flushErr
}

// MemoryRecorder captures rows for tests.
type MemoryRecorder struct {
	Rows [][2]string
	// Err, when set, is returned from every WriteRow call.
	Err error
}

// WriteRow appends the pair to Rows.
func (r *MemoryRecorder) WriteRow(oldName, newName string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Rows = append(r.Rows, [2]string{oldName, newName})
	return nil
}
