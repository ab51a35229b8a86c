package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/audiotidy/internal/core/logging"
	"github.com/colonyops/audiotidy/internal/core/rename"
	"github.com/colonyops/audiotidy/internal/core/scan"
	"github.com/colonyops/audiotidy/internal/core/styles"
)

type ScanCmd struct {
	flags *Flags

	// flags
	input  string
	report string
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags) *ScanCmd {
	return &ScanCmd{flags: flags}
}

// Register adds the scan command to the application
func (cmd *ScanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scan",
		Usage:     "Inventory audio files and write a CSV report",
		UsageText: "audiotidy scan [--input DIR] [--report FILE]",
		Description: `Collects name, extension, size, and (for WAV files) duration for
every recognized audio file and writes the result as a CSV report.
Useful for answering "how much data do I have" before renaming or
training.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "directory containing the audio files",
				Value:       "input_audio",
				Destination: &cmd.input,
			},
			&cli.StringFlag{
				Name:        "report",
				Usage:       "path for the CSV report (defaults to config report_file)",
				Destination: &cmd.report,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ScanCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	policy := rename.Policy{
		Prefix:     cfg.Prefix,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	}

	scanner := &scan.Scanner{
		Lister: rename.OSLister{},
		Log:    logging.Component("scan"),
	}

	entries, err := scanner.Scan(cmd.input, policy)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cmd.input, err)
	}

	reportPath := cmd.report
	if reportPath == "" {
		reportPath = cfg.ReportFile
	}

	if err := scan.WriteReport(reportPath, entries); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	files, sizeKB, durationSec := scan.Totals(entries)
	log.Info().
		Int("files", files).
		Float64("total_kb", sizeKB).
		Float64("total_duration_sec", durationSec).
		Str("report", reportPath).
		Msg("scan complete")

	out := c.Root().Writer
	_, _ = fmt.Fprintln(out, styles.Success(fmt.Sprintf("Scanned %d file(s)", files))+
		"  "+styles.Muted(fmt.Sprintf("(report %s)", reportPath)))

	return nil
}
