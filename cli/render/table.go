package render

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/pithecene-io/advent/solution"
)

// Table output rules:
//   - slices render one row per element under a header row
//   - a struct or map renders as "name:<tab>value" lines
//   - column names come from the table tag, then the json tag, then the
//     lowercased field name; a "-" tag hides the field
//   - map keys are sorted so output is stable

func (r *Renderer) renderTable(data any) error {
	switch v := data.(type) {
	case *solution.Report:
		data = []ReportRow{NewReportRow(v)}
	case []*solution.Report:
		data = ReportRows(v)
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	v := indirect(reflect.ValueOf(data))

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		writeRows(w, v)
	case reflect.Struct:
		for _, col := range columnsOf(v.Type()) {
			fmt.Fprintf(w, "%s:\t%s\n", col.name, cell(v.Field(col.index)))
		}
	case reflect.Map:
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(w, "%v:\t%s\n", k.Interface(), cell(v.MapIndex(k)))
		}
	default:
		fmt.Fprintf(w, "%v\n", data)
	}
	return w.Flush()
}

func writeRows(w io.Writer, v reflect.Value) {
	if v.Len() == 0 {
		fmt.Fprintln(w, "(no results)")
		return
	}

	first := indirect(v.Index(0))
	switch first.Kind() {
	case reflect.Struct:
		cols := columnsOf(first.Type())
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.name
		}
		fmt.Fprintln(w, strings.Join(names, "\t"))
		for i := 0; i < v.Len(); i++ {
			row := indirect(v.Index(i))
			cells := make([]string, len(cols))
			for j, c := range cols {
				cells[j] = cell(row.Field(c.index))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}

	case reflect.Map:
		keys := sortedKeys(first)
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
		}
		fmt.Fprintln(w, strings.Join(names, "\t"))
		for i := 0; i < v.Len(); i++ {
			row := indirect(v.Index(i))
			cells := make([]string, len(keys))
			for j, k := range keys {
				cells[j] = cell(row.MapIndex(k))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}

	default:
		fmt.Fprintln(w, "value")
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, cell(v.Index(i)))
		}
	}
}

type column struct {
	name  string
	index int
}

func columnsOf(t reflect.Type) []column {
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := columnName(f)
		if name == "-" {
			continue
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

func columnName(f reflect.StructField) string {
	for _, key := range []string{"table", "json"} {
		if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// sortedKeys returns m's keys ordered by their printed form.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})
	return keys
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// cell formats one value. Stringers win; collections are summarized.
func cell(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		return "{...}"
	default:
		return fmt.Sprint(v.Interface())
	}
}
