package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/timer"
)

func sampleReport() *solution.Report {
	return &solution.Report{
		Puzzle:  1,
		PartOne: solution.Some("6"),
		PartTwo: solution.None[string](),
		Timings: timer.Timings{
			{Label: solution.LabelParsing, Duration: 3 * time.Microsecond},
			{Label: solution.LabelTotal, Duration: 41 * time.Microsecond},
		},
		Profile: "RELEASE",
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json":   FormatJSON,
		"JSON":   FormatJSON,
		"table":  FormatTable,
		"yaml":   FormatYAML,
		"Pretty": FormatPretty,
		"":       "",
	} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, in := range []string{"xml", "csv", "jsonl"} {
		_, err := ParseFormat(in)
		if err == nil || !strings.Contains(err.Error(), "json, table, yaml, or pretty") {
			t.Errorf("ParseFormat(%q) error = %v, want list of valid formats", in, err)
		}
	}
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRenderer_Output(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   any
		want   string
	}{
		{"json", FormatJSON, map[string]string{"key": "value"}, "{\n  \"key\": \"value\"\n}\n"},
		{"yaml", FormatYAML, map[string]string{"key": "value"}, "key: value\n"},
		{"table struct", FormatTable, item{ID: "test", Name: "42"}, "id:    test\nname:  42\n"},
		{
			"table slice", FormatTable,
			[]item{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}},
			"id  name\n1   first\n2   second\n",
		},
		{"table empty", FormatTable, []string{}, "(no results)\n"},
		{"pretty falls back to table", FormatPretty, map[string]string{"key": "value"}, "key:  value\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, noColor := range []bool{false, true} {
				var buf bytes.Buffer
				if err := NewRendererWithWriter(tt.format, noColor, &buf).Render(tt.data); err != nil {
					t.Fatalf("Render failed: %v", err)
				}
				if buf.String() != tt.want {
					t.Errorf("noColor=%v: got %q, want %q", noColor, buf.String(), tt.want)
				}
			}
		})
	}
}

func TestRenderer_Table_Reports(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render([]*solution.Report{sampleReport()}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"puzzle", "part_one", "part_two", "total", "6", "unimplemented", "41µs", "RELEASE"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "{...}") {
		t.Errorf("answers should render through String, got: %s", got)
	}
}

func TestRenderer_Pretty_NoColorMatchesPlainReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatPretty, true, &buf)
	rep := sampleReport()

	if err := r.Render(rep); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := buf.String(), rep.String()+"\n"; got != want {
		t.Errorf("pretty --no-color = %q, want %q", got, want)
	}
}

func TestRenderer_RenderReportTo_JSON(t *testing.T) {
	var unused, buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, false, &unused)

	if err := r.RenderReportTo(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderReportTo failed: %v", err)
	}
	if unused.Len() != 0 {
		t.Errorf("RenderReportTo should write to the given writer only")
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded["part_one"] != "6" {
		t.Errorf("part_one = %v, want 6", decoded["part_one"])
	}
	if decoded["part_two"] != nil {
		t.Errorf("part_two = %v, want null", decoded["part_two"])
	}
}

func TestRenderer_RenderReportTo_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, nil)

	if err := r.RenderReportTo(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderReportTo failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines: %s", len(lines), buf.String())
	}
}

func TestRenderer_RenderTUI_Unsupported(t *testing.T) {
	r := NewRendererWithWriter(FormatTable, false, &bytes.Buffer{})
	err := r.RenderTUI("list", nil)
	if err == nil || !strings.Contains(err.Error(), "--tui is not supported for list") {
		t.Errorf("RenderTUI(list) error = %v", err)
	}
}

func TestNewReportRow_NoTotal(t *testing.T) {
	rep := sampleReport()
	rep.Timings = nil
	row := NewReportRow(rep)
	if row.Total != 0 {
		t.Errorf("Total = %v, want 0", row.Total)
	}
	if row.PartTwo != "unimplemented" {
		t.Errorf("PartTwo = %q, want unimplemented", row.PartTwo)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name       string
		flag, conf string
		tty        bool
		want       Format
		wantErr    bool
	}{
		{name: "flag wins", flag: "yaml", conf: "table", tty: true, want: FormatYAML},
		{name: "config", conf: "table", want: FormatTable},
		{name: "tty default", tty: true, want: FormatPretty},
		{name: "pipe default", want: FormatJSON},
		{name: "bad config", conf: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.flag, tt.conf, tt.tty, FormatPretty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_Table_ColumnRules(t *testing.T) {
	type row struct {
		ID     int    `json:"id" table:"puzzle"`
		Secret string `table:"-"`
		Note   string
		hidden string
	}
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render([]row{{ID: 3, Secret: "s3cr3t", Note: "ok", hidden: "x"}}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if got := strings.Fields(lines[0]); strings.Join(got, ",") != "puzzle,note" {
		t.Errorf("headers = %v, want [puzzle note]", got)
	}
	if strings.Contains(buf.String(), "s3cr3t") {
		t.Errorf("hidden column rendered: %s", buf.String())
	}
}

func TestRenderer_Table_MapKeysSorted(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render(map[string]int{"b": 2, "c": 3, "a": 1}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for i, prefix := range []string{"a:", "b:", "c:"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestRenderer_Table_Scalars(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render([]string{"x", "y"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := buf.String(); got != "value\nx\ny\n" {
		t.Errorf("scalar slice = %q", got)
	}
}

func TestRenderer_UnknownFormat(t *testing.T) {
	r := NewRendererWithWriter(Format("xml"), false, &bytes.Buffer{})
	if err := r.Render(1); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Render() error = %v, want unknown format", err)
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if isTTY(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}
