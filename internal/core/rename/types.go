// Package rename implements the batch rename engine: candidate selection,
// plan construction, conflict detection, and preview/apply execution.
package rename

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// padWidth is the fixed zero-padding width for index values in target names.
const padWidth = 3

// Mode selects between previewing a plan and applying it.
type Mode string

// Run modes.
const (
	ModePreview Mode = "preview"
	ModeApply   Mode = "apply"
)

// Decision is the planning verdict for a single candidate.
type Decision string

// Planning decisions.
const (
	DecisionRename Decision = "rename"
	DecisionSkip   Decision = "skip-already-named"
)

// Outcome is the terminal state of an entry after execution.
type Outcome string

// Entry outcomes. Each entry reaches exactly one of these and never
// transitions again within a run.
const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomePreviewed Outcome = "previewed"
	OutcomeApplied   Outcome = "applied"
	OutcomeFailed    Outcome = "failed"
)

// Candidate identifies an existing file eligible for renaming.
type Candidate struct {
	Dir  string
	Name string
	Ext  string // lowercased, includes the leading dot
}

// Path returns the candidate's full path.
func (c Candidate) Path() string {
	return filepath.Join(c.Dir, c.Name)
}

// Policy is the immutable naming configuration for one run.
type Policy struct {
	// Prefix is the canonical name prefix, e.g. "speaker".
	Prefix string
	// StartIndex is the first index value assigned, >= 0.
	StartIndex int
	// Extensions is the recognized extension set, lowercased with dots.
	Extensions []string
	// Exclude holds doublestar glob patterns; matching names are never
	// considered candidates.
	Exclude []string
}

// TargetName builds the canonical name for an index and extension,
// e.g. speaker_001.wav.
func (p Policy) TargetName(index int, ext string) string {
	return fmt.Sprintf("%s_%0*d%s", p.Prefix, padWidth, index, ext)
}

// AlreadyNamed reports whether name looks renamed under this policy's
// prefix. The check is deliberately loose: it only inspects the
// "<prefix>_" lead-in, not whether the numeric suffix is well-formed,
// so a manually named file sharing the prefix is treated as renamed.
func (p Policy) AlreadyNamed(name string) bool {
	return strings.HasPrefix(name, p.Prefix+"_")
}

// Recognizes reports whether ext (lowercased) is in the recognized set.
func (p Policy) Recognizes(ext string) bool {
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Entry pairs one candidate with its planning decision and, once
// executed, its terminal outcome.
type Entry struct {
	Candidate Candidate
	Decision  Decision
	// Target is the computed canonical name. Empty for skip entries.
	Target string
	// Index is the index value consumed by this entry. Meaningful only
	// for rename-decision entries.
	Index   int
	Outcome Outcome
	// Reason describes why a failed entry failed, e.g. "NameCollision".
	Reason string
}

// RunRecord is the ordered result of one run. It is written to the
// logger and mapping recorder as the run progresses and is not retained
// between runs.
type RunRecord struct {
	ID      string
	Dir     string
	Mode    Mode
	Started time.Time
	Entries []Entry
}

// Count returns how many entries finished with the given outcome.
func (r *RunRecord) Count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Planned returns how many entries carry a rename decision.
func (r *RunRecord) Planned() int {
	n := 0
	for _, e := range r.Entries {
		if e.Decision == DecisionRename {
			n++
		}
	}
	return n
}
