package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/render"
	"github.com/pithecene-io/advent/iox"
	"github.com/pithecene-io/advent/loader"
	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/runtime"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// watchDebounce is how long an input must be quiet before a re-solve.
const watchDebounce = 200 * time.Millisecond

// WatchCommand returns the watch command.
// Watch solves one puzzle, then solves it again every time its input
// file changes, until interrupted. Only the fs input backend is supported.
func WatchCommand(reg *solution.Registry) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-solve a puzzle whenever its input file changes",
		Flags: append(ConfiguredFlags(),
			&cli.UintFlag{
				Name:     "day",
				Aliases:  []string{"d"},
				Usage:    "Puzzle to watch",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "test",
				Aliases: []string{"t"},
				Usage:   "Watch the example (test_NN.txt) input",
			},
		),
		Action: watchAction(reg),
	}
}

func watchAction(reg *solution.Registry) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := rejectTUI(c, "watch"); err != nil {
			return err
		}
		day := c.Uint("day")
		if day == 0 || day > uint(types.MaxPuzzleID) {
			return invalidInput(fmt.Errorf("puzzle must be between 1 and %d", types.MaxPuzzleID))
		}
		id := types.PuzzleID(day)
		if !reg.Has(id) {
			return invalidInput(fmt.Errorf("puzzle %s: %w", id, solution.ErrNotRegistered))
		}
		testing := c.Bool("test")

		e, err := setup(c, testing)
		if err != nil {
			return err
		}
		defer e.Close()

		in := e.config.Inputs
		if in.Backend != "" && in.Backend != loader.BackendFS {
			return invalidInput(fmt.Errorf("watch requires the fs input backend, got %q", in.Backend))
		}
		dir := in.Path
		if dir == "" {
			dir = loader.DefaultDir
		}
		inputPath := loader.NewFS(dir, in.TestPath).Path(id, testing)

		// Re-solves must see fresh input, so the cache is always present
		// and invalidated on change.
		if e.cache == nil {
			if e.cache, err = loader.NewCached(e.inputs, loader.DefaultCacheSize, e.collector); err != nil {
				return err
			}
			e.inputs = e.cache
		}

		r, err := render.NewRenderer(c, e.config.Output, render.FormatPretty)
		if err != nil {
			return invalidInput(err)
		}
		cfg := e.solverConfig()
		cfg.Render = r.RenderReportTo
		cfg.ShowTesting = true
		solver := runtime.NewSolver(cfg)

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		solve := func() {
			if _, err := reg.Solve(ctx, id, solver, testing); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer iox.DiscardClose(watcher)
		// Editors often replace files, so the directory is watched.
		if err := watcher.Add(filepath.Dir(inputPath)); err != nil {
			return invalidInput(fmt.Errorf("watch %s: %w", inputPath, err))
		}

		solve()
		e.logger.Info("watching input", map[string]any{
			"puzzle": id.Padded(),
			"path":   inputPath,
		})
		watchLoop(ctx, watcher, inputPath, watchDebounce, e.logger, func() {
			e.cache.Invalidate(id)
			solve()
		})
		return nil
	}
}

// watchLoop calls onChange once per burst of writes to path, after the
// file has been quiet for debounce. It returns when ctx is done or the
// watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, logger *log.Logger, onChange func()) {
	path = filepath.Clean(path)
	ticker := time.NewTicker(debounce / 4)
	defer ticker.Stop()

	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				lastEvent = time.Now()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", map[string]any{"error": err.Error()})

		case <-ticker.C:
			if !lastEvent.IsZero() && time.Since(lastEvent) >= debounce {
				lastEvent = time.Time{}
				onChange()
			}
		}
	}
}
