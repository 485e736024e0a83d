package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/archive"
	"github.com/pithecene-io/advent/cli/render"
	"github.com/pithecene-io/advent/loader"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// PuzzleRow is one line of `advent list`.
type PuzzleRow struct {
	Puzzle    types.PuzzleID `json:"puzzle" yaml:"puzzle"`
	Input     bool           `json:"input" yaml:"input"`
	TestInput bool           `json:"test_input" yaml:"test_input"`
	// Last archived answers; empty when no archive is configured or the
	// puzzle was never archived.
	LastPartOne string `json:"last_part_one,omitempty" yaml:"last_part_one,omitempty"`
	LastPartTwo string `json:"last_part_two,omitempty" yaml:"last_part_two,omitempty"`
	LastSession string `json:"last_session,omitempty" yaml:"last_session,omitempty"`
}

// latestReader is the archive read the list command needs.
type latestReader interface {
	Latest(ctx context.Context, id types.PuzzleID) (*archive.Record, error)
}

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ListCommand returns the list command.
// List shows registered puzzles with input availability and, when an
// archive is configured, the last archived answers.
func ListCommand(reg *solution.Registry) *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List registered puzzles",
		Flags:  ConfiguredFlags(),
		Action: listAction(reg),
	}
}

func listAction(reg *solution.Registry) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := rejectTUI(c, "list"); err != nil {
			return err
		}

		e, err := setup(c, false)
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := render.NewRenderer(c, e.config.Output, render.FormatTable)
		if err != nil {
			return invalidInput(err)
		}

		var latest latestReader
		if e.archive != nil {
			latest = e.archive
		}
		rows, err := listPuzzles(c.Context, reg, e.inputs, latest)
		if err != nil {
			return err
		}
		if len(rows) == 0 && isStderrTTY() {
			fmt.Fprintln(os.Stderr, "Warning: no puzzles are registered.")
		}
		return r.Render(rows)
	}
}

// listPuzzles builds one row per registered puzzle. latest may be nil.
func listPuzzles(ctx context.Context, reg *solution.Registry, inputs solution.Solver, latest latestReader) ([]PuzzleRow, error) {
	ids := reg.IDs()
	rows := make([]PuzzleRow, 0, len(ids))
	for _, id := range ids {
		row := PuzzleRow{Puzzle: id}

		var err error
		if row.Input, err = inputExists(ctx, inputs, id, false); err != nil {
			return nil, err
		}
		if row.TestInput, err = inputExists(ctx, inputs, id, true); err != nil {
			return nil, err
		}

		if latest != nil {
			rec, err := latest.Latest(ctx, id)
			switch {
			case errors.Is(err, archive.ErrNoReports):
			case err != nil:
				return nil, fmt.Errorf("read archive for puzzle %s: %w", id, err)
			default:
				row.LastPartOne = rec.PartOne.String()
				row.LastPartTwo = rec.PartTwo.String()
				row.LastSession = rec.SessionID
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func inputExists(ctx context.Context, inputs solution.Solver, id types.PuzzleID, testing bool) (bool, error) {
	_, err := inputs.Load(ctx, id, testing)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, loader.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check input %s: %w", loader.Name(id, testing), err)
	}
}
