// Package main provides the advent CLI entrypoint.
//
// Usage:
//
//	advent <command> [options]
//
// Exit codes for `solve`:
//   - 0: success
//   - 1: a puzzle part failed
//   - 2: puzzle input could not be loaded
//   - 3: invalid input, unknown puzzle, or bad flags/config
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/cmd"
	"github.com/pithecene-io/advent/puzzles"
	"github.com/pithecene-io/advent/runtime"
	"github.com/pithecene-io/advent/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	err := newApp().Run(args)
	code, msg := exitStatus(err)
	if msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	return code
}

func newApp() *cli.App {
	reg := puzzles.Registry()
	return &cli.App{
		Name:    "advent",
		Usage:   "Run Advent of Code puzzle solutions",
		Version: fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		// Exit codes are mapped in run, not inside the library.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			cmd.SolveCommand(reg),
			cmd.ListCommand(reg),
			cmd.InspectCommand(),
			cmd.WatchCommand(reg),
			cmd.VersionCommand(commit),
		},
	}
}

// exitStatus maps a command error to the process exit code and the line
// to print on stderr. cli.Exit("", N) prints nothing.
func exitStatus(err error) (int, string) {
	if err == nil {
		return runtime.ExitCodeSuccess, ""
	}
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		return runtime.ExitCodePuzzleError, "Error: " + err.Error()
	}
	code := coder.ExitCode()
	msg := coder.Error()
	if msg == fmt.Sprintf("exit status %d", code) {
		msg = ""
	}
	return code, msg
}
