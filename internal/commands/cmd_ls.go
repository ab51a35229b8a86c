package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/audiotidy/internal/core/rename"
	"github.com/colonyops/audiotidy/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	input      string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List rename candidates in a directory",
		UsageText: "audiotidy ls [--input DIR] [--json]",
		Description: `Displays the files a rename run would consider, in the order they
would be processed, with a marker for files that already carry the
configured prefix.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "directory containing the audio files",
				Value:       "input_audio",
				Destination: &cmd.input,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// candidateInfo is the JSON output format for audiotidy ls --json.
type candidateInfo struct {
	Name    string `json:"name"`
	Ext     string `json:"ext"`
	Renamed bool   `json:"already_renamed"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	policy := rename.Policy{
		Prefix:     cfg.Prefix,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	}

	entries, err := rename.OSLister{}.List(cmd.input)
	if err != nil {
		return fmt.Errorf("list %s: %w", cmd.input, err)
	}

	candidates := rename.Select(cmd.input, entries, policy)
	if len(candidates) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No matching files in %s\n", cmd.input)
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, cand := range candidates {
			info := candidateInfo{
				Name:    cand.Name,
				Ext:     cand.Ext,
				Renamed: policy.AlreadyNamed(cand.Name),
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode candidate: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEXT\tSTATUS")
	for _, cand := range candidates {
		status := "pending"
		if policy.AlreadyNamed(cand.Name) {
			status = "already renamed"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", cand.Name, cand.Ext, status)
	}
	_ = w.Flush()

	return nil
}
