// Package cmd provides CLI commands for the advent binary.
package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/config"
)

// Shared flags for display commands.
var (
	// FormatFlag selects output format: json, table, yaml, pretty.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml, pretty",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for select commands (solve, inspect).
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (solve, inspect only)",
	}

	// ConfigFlag points at the YAML config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file",
		Value:   config.DefaultPath,
		EnvVars: []string{"ADVENT_CONFIG"},
	}

	// EnvFileFlag points at a dotenv file loaded before the config is expanded.
	EnvFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Usage: "Path to .env file loaded before config expansion",
		Value: ".env",
	}

	// LogLevelFlag overrides log.level from config.
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn, error",
	}
)

// ReadOnlyFlags returns the shared flags for all display commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// ConfiguredFlags returns the display flags plus config and logging flags,
// for commands that touch inputs, the archive or adapters.
func ConfiguredFlags() []cli.Flag {
	return append(ReadOnlyFlags(),
		ConfigFlag,
		EnvFileFlag,
		LogLevelFlag,
	)
}
