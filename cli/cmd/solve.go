package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/render"
	"github.com/pithecene-io/advent/cli/tui"
	"github.com/pithecene-io/advent/record"
	"github.com/pithecene-io/advent/runtime"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// SolveCommand returns the solve command.
// This is the only command that runs puzzles.
func SolveCommand(reg *solution.Registry) *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "Solve one puzzle, puzzles 1..N, or every registered puzzle",
		Flags: append(ConfiguredFlags(),
			&cli.UintFlag{
				Name:    "day",
				Aliases: []string{"d"},
				Usage:   "Solve a single puzzle",
			},
			&cli.UintFlag{
				Name:  "through",
				Usage: "Solve puzzles 1..N in order",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Solve every registered puzzle",
			},
			&cli.BoolFlag{
				Name:    "test",
				Aliases: []string{"t"},
				Usage:   "Use the example (test_NN.txt) inputs",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress per-puzzle output",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON session report to a file path (use - for stderr)",
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "Append reports to a record file (overrides record.path)",
			},
		),
		Action: solveAction(reg),
	}
}

// selectionFromFlags reads --day, --through and --all.
func selectionFromFlags(c *cli.Context) (runtime.Selection, error) {
	sel := runtime.Selection{All: c.Bool("all")}
	day, through := c.Uint("day"), c.Uint("through")
	if day > uint(types.MaxPuzzleID) || through > uint(types.MaxPuzzleID) {
		return sel, fmt.Errorf("puzzle must be between 1 and %d", types.MaxPuzzleID)
	}
	sel.Day = types.PuzzleID(day)
	sel.Through = types.PuzzleID(through)
	return sel, sel.Validate()
}

func solveAction(reg *solution.Registry) cli.ActionFunc {
	return func(c *cli.Context) error {
		sel, err := selectionFromFlags(c)
		if err != nil {
			return invalidInput(err)
		}
		useTUI := c.Bool("tui")
		if useTUI && !tui.IsTUISupported(tui.ViewSolve) {
			return invalidInput(fmt.Errorf("--tui is not supported for %s", tui.ViewSolve))
		}
		testing := c.Bool("test")

		e, err := setup(c, testing)
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := render.NewRenderer(c, e.config.Output, render.FormatPretty)
		if err != nil {
			return invalidInput(err)
		}
		if path := c.String("record"); path != "" {
			e.record = record.NewWriter(path)
		}

		cfg := e.solverConfig()
		cfg.Render = r.RenderReportTo
		// --test is an explicit request, so its reports are shown.
		cfg.ShowTesting = true
		if useTUI || c.Bool("quiet") {
			cfg.Output = io.Discard
		}
		solver := runtime.NewSolver(cfg)
		session := runtime.NewSession(e.sessionID, reg, solver, e.logger, e.collector)

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, runErr := session.Run(ctx, sel, testing)
		_, code := runtime.DetermineOutcome(runErr)

		if path := c.String("report"); path != "" {
			snap := e.collector.Snapshot()
			if err := runtime.WriteSessionReport(runtime.BuildSessionReport(result, snap, code), path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		if useTUI && len(result.Reports) > 0 {
			snap := e.collector.Snapshot()
			if err := r.RenderTUI(tui.ViewSolve, tui.Results{
				Title:   "advent solve " + sel.String(),
				Reports: result.Reports,
				Metrics: &snap,
			}); err != nil {
				return err
			}
		}

		if runErr != nil {
			return cli.Exit(runErr.Error(), code)
		}
		return nil
	}
}
