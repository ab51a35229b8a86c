package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/audiotidy/internal/core/config"
	"github.com/colonyops/audiotidy/internal/core/logging"
	"github.com/colonyops/audiotidy/internal/core/rename"
	"github.com/colonyops/audiotidy/internal/core/styles"
	"github.com/colonyops/audiotidy/pkg/fsops"
)

type RenameCmd struct {
	flags *Flags

	// flags
	input   string
	prefix  string
	start   int
	apply   bool
	yes     bool
	mapping string
}

// NewRenameCmd creates a new rename command
func NewRenameCmd(flags *Flags) *RenameCmd {
	return &RenameCmd{flags: flags}
}

// Register adds the rename command to the application
func (cmd *RenameCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rename",
		Usage:     "Batch-rename audio files into a canonical scheme",
		UsageText: "audiotidy rename --input DIR [--prefix P] [--start N] [--apply]",
		Description: `Renames every recognized audio file in the input directory to
<prefix>_<index>.<ext> with a zero-padded three digit index, e.g.
speaker_001.wav. Files already carrying the prefix are skipped so
running twice is safe.

Without --apply this is a dry run: the plan is logged and written to
the mapping file, but nothing on disk changes. Every rename attempt,
including failed ones, is recorded as one old_name,new_name row in
the mapping file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "directory containing the audio files",
				Value:       "input_audio",
				Destination: &cmd.input,
			},
			&cli.StringFlag{
				Name:        "prefix",
				Aliases:     []string{"p"},
				Usage:       "prefix for renamed files (defaults to config prefix)",
				Destination: &cmd.prefix,
			},
			&cli.IntFlag{
				Name:        "start",
				Aliases:     []string{"s"},
				Usage:       "first index value (defaults to config start_index)",
				Destination: &cmd.start,
			},
			&cli.BoolFlag{
				Name:        "apply",
				Aliases:     []string{"a"},
				Usage:       "actually rename files (otherwise dry-run)",
				Destination: &cmd.apply,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt in apply mode",
				Destination: &cmd.yes,
			},
			&cli.StringFlag{
				Name:        "mapping",
				Usage:       "path for the mapping CSV (defaults to config mapping_file)",
				Destination: &cmd.mapping,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenameCmd) run(ctx context.Context, c *cli.Command) error {
	policy, err := cmd.policy(c)
	if err != nil {
		return err
	}

	lister := rename.OSLister{}

	if cmd.apply && !cmd.yes {
		ok, err := cmd.confirm(lister, policy)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
	}

	mappingPath := cmd.mapping
	if mappingPath == "" {
		mappingPath = cmd.flags.Config.MappingFile
	}

	recorder, err := rename.NewCSVRecorder(mappingPath)
	if err != nil {
		return fmt.Errorf("open mapping file: %w", err)
	}
	defer func() { _ = recorder.Close() }()

	mode := rename.ModePreview
	if cmd.apply {
		mode = rename.ModeApply
	}

	runner := &rename.Runner{
		Lister: lister,
		FS:     fsops.RealMutator{},
		Rec:    recorder,
		Log:    logging.Component("rename"),
	}

	record, err := runner.Run(cmd.input, policy, mode)
	if err != nil {
		return fmt.Errorf("rename run: %w", err)
	}

	cmd.printSummary(c, record, mappingPath)
	return nil
}

// policy builds the immutable naming policy for this run from flags
// with config fallbacks.
func (cmd *RenameCmd) policy(c *cli.Command) (rename.Policy, error) {
	cfg := cmd.flags.Config

	prefix := cmd.prefix
	if prefix == "" {
		prefix = cfg.Prefix
	}
	if err := config.Prefix(prefix); err != nil {
		return rename.Policy{}, fmt.Errorf("prefix: %w", err)
	}

	start := cfg.StartIndex
	if c.IsSet("start") {
		start = cmd.start
	}
	if start < 0 {
		return rename.Policy{}, fmt.Errorf("start index must be >= 0, got %d", start)
	}

	return rename.Policy{
		Prefix:     prefix,
		StartIndex: start,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	}, nil
}

// confirm shows how many files the plan would touch and asks before
// mutating the directory. Declining is not an error.
func (cmd *RenameCmd) confirm(lister rename.Lister, policy rename.Policy) (bool, error) {
	entries, err := lister.List(cmd.input)
	if err != nil {
		return false, err
	}

	planned := 0
	for _, cand := range rename.Select(cmd.input, entries, policy) {
		if !policy.AlreadyNamed(cand.Name) {
			planned++
		}
	}

	if planned == 0 {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Rename %d file(s) in %s?", planned, cmd.input)).
			Description("This changes file names on disk. The mapping file records every change.").
			Value(&ok),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm prompt: %w", err)
	}

	return ok, nil
}

func (cmd *RenameCmd) printSummary(c *cli.Command, record *rename.RunRecord, mappingPath string) {
	out := c.Root().Writer

	var head string
	switch record.Mode {
	case rename.ModeApply:
		head = styles.Success(fmt.Sprintf("Renamed %d file(s)", record.Count(rename.OutcomeApplied)))
	default:
		head = styles.Warning(fmt.Sprintf("Previewed %d rename(s), nothing changed", record.Count(rename.OutcomePreviewed)))
	}

	line := fmt.Sprintf("%s  skipped %d", head, record.Count(rename.OutcomeSkipped))
	if failed := record.Count(rename.OutcomeFailed); failed > 0 {
		line += "  " + styles.Failure(fmt.Sprintf("failed %d", failed))
	}
	line += "  " + styles.Muted(fmt.Sprintf("(run %s, mapping %s)", record.ID, mappingPath))

	_, _ = fmt.Fprintln(out, line)
}
