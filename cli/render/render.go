// Package render provides centralized output rendering for the advent CLI.
//
// Format selection rules:
//   - If output is a TTY, default to the command's TTY format (table or pretty)
//   - If output is not a TTY, default to json
//   - --format flag, then output.format from config, override defaults
//   - Invalid formats are errors
//
// Color handling:
//   - --no-color affects pretty output only
//   - TUI mode is unaffected by --no-color (uses its own styling)
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/advent/cli/config"
	"github.com/pithecene-io/advent/cli/tui"
	"github.com/pithecene-io/advent/solution"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatTable  Format = "table"
	FormatYAML   Format = "yaml"
	FormatPretty Format = "pretty"
)

// ParseFormat parses a format name case-insensitively. The empty string
// parses to the empty Format, leaving the choice to the caller.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case "", FormatJSON, FormatTable, FormatYAML, FormatPretty:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %q (must be json, table, yaml, or pretty)", s)
}

// resolveFormat applies the selection order: flag, then config, then the
// terminal default.
func resolveFormat(flag, configured string, tty bool, ttyFormat Format) (Format, error) {
	name := flag
	if name == "" {
		name = configured
	}
	f, err := ParseFormat(name)
	switch {
	case err != nil:
		return "", err
	case f != "":
		return f, nil
	case tty:
		return ttyFormat, nil
	default:
		return FormatJSON, nil
	}
}

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a stdout renderer from the command's --format and
// --no-color flags and the config's output section. ttyFormat applies
// when nothing selects a format and stdout is a terminal.
func NewRenderer(c *cli.Context, defaults config.OutputConfig, ttyFormat Format) (*Renderer, error) {
	format, err := resolveFormat(c.String("format"), defaults.Format, isTTY(os.Stdout), ttyFormat)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color") || defaults.NoColor,
		out:     os.Stdout,
	}, nil
}

// Format returns the selected format.
func (r *Renderer) Format() Format { return r.format }

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{
		format:  format,
		noColor: noColor,
		out:     out,
	}
}

// Render outputs the data in the configured format.
func (r *Renderer) Render(data any) error {
	emit, ok := encoders[r.format]
	if !ok {
		return fmt.Errorf("unknown format: %s", r.format)
	}
	return emit(r, data)
}

var encoders = map[Format]func(*Renderer, any) error{
	FormatJSON:   (*Renderer).renderJSON,
	FormatTable:  (*Renderer).renderTable,
	FormatYAML:   (*Renderer).renderYAML,
	FormatPretty: (*Renderer).renderPretty,
}

// RenderReportTo writes one report to w in the configured format.
// Its signature matches runtime.RenderFunc.
func (r *Renderer) RenderReportTo(w io.Writer, rep *solution.Report) error {
	sub := &Renderer{format: r.format, noColor: r.noColor, out: w}
	if sub.format == FormatTable {
		return sub.Render([]ReportRow{NewReportRow(rep)})
	}
	return sub.Render(rep)
}

// RenderTUI hands data to the interactive view for a command.
func (r *Renderer) RenderTUI(view string, data any) error {
	if !tui.IsTUISupported(view) {
		return fmt.Errorf("--tui is not supported for %s", view)
	}
	return tui.Run(view, data)
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// renderPretty draws reports as styled cards and falls back to a table
// for anything else.
func (r *Renderer) renderPretty(data any) error {
	switch v := data.(type) {
	case *solution.Report:
		_, err := fmt.Fprintln(r.out, tui.RenderReport(v, r.noColor))
		return err
	case []*solution.Report:
		for _, rep := range v {
			if _, err := fmt.Fprintln(r.out, tui.RenderReport(rep, r.noColor)); err != nil {
				return err
			}
		}
		return nil
	default:
		return r.renderTable(data)
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
