package rename

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/audiotidy/internal/core/logging"
	"github.com/colonyops/audiotidy/pkg/fsops"
	"github.com/colonyops/audiotidy/pkg/randid"
)

// Runner plans and executes one batch rename over a single directory.
// All collaborators are injected; the zero value is not usable.
type Runner struct {
	Lister Lister
	FS     fsops.Mutator
	Rec    Recorder
	Log    zerolog.Logger
}

// Run lists dir, plans a rename for every candidate, and executes the
// plan in candidate order. In preview mode no filesystem mutation
// occurs. Per-file failures are recorded on their entries and never
// abort the remaining plan; only a failed directory listing is fatal.
func (r *Runner) Run(dir string, policy Policy, mode Mode) (*RunRecord, error) {
	entries, err := r.Lister.List(dir)
	if err != nil {
		return nil, err
	}

	record := &RunRecord{
		ID:      randid.Generate(6),
		Dir:     dir,
		Mode:    mode,
		Started: time.Now(),
	}

	log := logging.WithRun(r.Log, record.ID)

	candidates := Select(dir, entries, policy)
	if len(candidates) == 0 {
		log.Info().Str("dir", dir).Msg("no matching files found")
		return record, nil
	}

	log.Info().Str("dir", dir).Int("files", len(candidates)).Msg("found matching files")

	record.Entries = r.plan(candidates, policy)
	r.execute(record, entries, log)

	log.Info().
		Int("renamed", record.Count(OutcomeApplied)).
		Int("previewed", record.Count(OutcomePreviewed)).
		Int("skipped", record.Count(OutcomeSkipped)).
		Int("failed", record.Count(OutcomeFailed)).
		Msg("run complete")

	return record, nil
}

// plan assigns decisions and target names. The running index advances
// once per rename decision and never for skips, so index values for
// rename entries form a gapless increasing sequence even when an entry
// later fails.
func (r *Runner) plan(candidates []Candidate, policy Policy) []Entry {
	entries := make([]Entry, 0, len(candidates))
	index := policy.StartIndex

	for _, c := range candidates {
		if policy.AlreadyNamed(c.Name) {
			entries = append(entries, Entry{Candidate: c, Decision: DecisionSkip})
			continue
		}

		entries = append(entries, Entry{
			Candidate: c,
			Decision:  DecisionRename,
			Target:    policy.TargetName(index, c.Ext),
			Index:     index,
		})
		index++
	}

	return entries
}

// execute walks the plan in order, emitting one log line and, for
// rename decisions, one mapping row per entry as it settles.
func (r *Runner) execute(record *RunRecord, listing []DirEntry, log zerolog.Logger) {
	existing := make(map[string]bool, len(listing))
	for _, e := range listing {
		existing[e.Name] = true
	}

	// Names that a rename in this run will vacate. A target equal to
	// one of these is not a collision.
	vacated := make(map[string]bool)
	for _, e := range record.Entries {
		if e.Decision == DecisionRename {
			vacated[e.Candidate.Name] = true
		}
	}

	for i := range record.Entries {
		e := &record.Entries[i]

		if e.Decision == DecisionSkip {
			e.Outcome = OutcomeSkipped
			log.Info().Str("file", e.Candidate.Name).Msg("SKIPPED (already renamed)")
			continue
		}

		if existing[e.Target] && !vacated[e.Target] {
			e.Outcome = OutcomeFailed
			e.Reason = ReasonNameCollision
			log.Error().
				Str("file", e.Candidate.Name).
				Str("target", e.Target).
				Msg("FAILED: target name already taken")
			r.writeRow(e, log)
			continue
		}

		switch record.Mode {
		case ModePreview:
			e.Outcome = OutcomePreviewed
			log.Info().
				Str("file", e.Candidate.Name).
				Str("target", e.Target).
				Msg("DRY RUN")

		case ModeApply:
			newPath := filepath.Join(e.Candidate.Dir, e.Target)
			if err := r.FS.Rename(e.Candidate.Path(), newPath); err != nil {
				e.Outcome = OutcomeFailed
				e.Reason = err.Error()
				log.Error().
					Str("file", e.Candidate.Name).
					Str("target", e.Target).
					Err(err).
					Msg("FAILED")
				r.writeRow(e, log)
				continue
			}
			e.Outcome = OutcomeApplied
			log.Info().
				Str("file", e.Candidate.Name).
				Str("target", e.Target).
				Msg("RENAMED")
		}

		r.writeRow(e, log)
	}
}

// writeRow records a rename-decision entry in the mapping table. Sink
// failures are logged and do not abort the run; the log line itself
// preserves the old-to-new pair.
func (r *Runner) writeRow(e *Entry, log zerolog.Logger) {
	if r.Rec == nil {
		return
	}
	if err := r.Rec.WriteRow(e.Candidate.Name, e.Target); err != nil {
		log.Error().Err(err).Str("file", e.Candidate.Name).Msg("write mapping row")
	}
}
