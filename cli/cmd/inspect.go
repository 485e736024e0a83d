package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/config"
	"github.com/pithecene-io/advent/cli/render"
	"github.com/pithecene-io/advent/cli/tui"
	"github.com/pithecene-io/advent/record"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// InspectRow is one decoded record entry.
type InspectRow struct {
	SessionID  string         `json:"session_id" yaml:"session_id"`
	Puzzle     types.PuzzleID `json:"puzzle" yaml:"puzzle"`
	PartOne    string         `json:"part_one" yaml:"part_one"`
	PartTwo    string         `json:"part_two" yaml:"part_two"`
	Testing    bool           `json:"testing" yaml:"testing"`
	Total      string         `json:"total" yaml:"total"`
	RecordedAt string         `json:"recorded_at" yaml:"recorded_at"`
}

// InspectCommand returns the inspect command.
// Inspect decodes a record file written by solve and renders its reports.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Inspect the reports in a record file",
		ArgsUsage: "<record-file>",
		Flags: append(ReadOnlyFlags(),
			&cli.UintFlag{
				Name:    "day",
				Aliases: []string{"d"},
				Usage:   "Only show reports for this puzzle",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Only show reports from this session",
			},
		),
		Action: inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return invalidInput(errors.New("record file required"))
	}
	path := c.Args().First()

	entries, readErr := record.ReadFile(path)
	if readErr != nil {
		if len(entries) == 0 {
			return cli.Exit(readErr.Error(), 1)
		}
		// Partial reads still render what decoded.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", readErr)
	}
	entries = filterEntries(entries, types.PuzzleID(c.Uint("day")), c.String("session"))

	reports := make([]*solution.Report, 0, len(entries))
	for _, e := range entries {
		reports = append(reports, e.Report())
	}

	r, err := render.NewRenderer(c, config.OutputConfig{}, render.FormatPretty)
	if err != nil {
		return invalidInput(err)
	}

	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewInspect, tui.Results{
			Title:   "advent inspect " + path,
			Reports: reports,
		})
	}

	if r.Format() == render.FormatPretty {
		return r.Render(reports)
	}
	return r.Render(inspectRows(entries))
}

// filterEntries keeps entries matching id and session; zero values match all.
func filterEntries(entries []*record.Entry, id types.PuzzleID, session string) []*record.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if id != 0 && e.Puzzle != id {
			continue
		}
		if session != "" && e.SessionID != session {
			continue
		}
		out = append(out, e)
	}
	return out
}

func inspectRows(entries []*record.Entry) []InspectRow {
	rows := make([]InspectRow, 0, len(entries))
	for _, e := range entries {
		rep := e.Report()
		total, _ := rep.Timings.Lookup(solution.LabelTotal)
		rows = append(rows, InspectRow{
			SessionID:  e.SessionID,
			Puzzle:     e.Puzzle,
			PartOne:    rep.PartOne.String(),
			PartTwo:    rep.PartTwo.String(),
			Testing:    e.Testing,
			Total:      total.String(),
			RecordedAt: e.RecordedAt,
		})
	}
	return rows
}
