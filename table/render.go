package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format is an output format for Render.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every format Render understands.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatYAML}

// maxCellWidth truncates long cells in table output.
const maxCellWidth = 48

var headerColor = color.New(color.Bold)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Render writes t to w in the given format.
func Render(w io.Writer, t *Table, format Format) error {
	switch format {
	case FormatTable, "":
		return renderText(w, t)
	case FormatCSV:
		return renderCSV(w, t)
	case FormatJSON:
		return renderJSON(w, t)
	case FormatYAML:
		return renderYAML(w, t)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, t *Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	cells := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			cells[i] = truncate(oneLine(Cell(r[c])), maxCellWidth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	header, body, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	if _, err := headerColor.Fprintln(w, strings.TrimRight(string(header), " ")); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

func renderCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	for _, r := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			record[i] = Cell(r[c])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// renderJSON writes an array of objects whose keys follow the column order.
func renderJSON(w io.Writer, t *Table) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		first := true
		for _, c := range t.Columns {
			v, ok := r[c]
			if !ok {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, _ := json.Marshal(c)
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("column %s: %w", c, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func renderYAML(w io.Writer, t *Table) error {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range t.Columns {
			v, ok := r[c]
			if !ok {
				continue
			}
			var val yaml.Node
			if err := val.Encode(Normalize(v)); err != nil {
				return fmt.Errorf("column %s: %w", c, err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c}, &val)
		}
		root.Content = append(root.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// Cell formats a value for text and CSV output.
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = Cell(elem)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// Normalize converts json.Number values to int64 or float64, recursing into
// arrays and maps.
func Normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Normalize(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = Normalize(elem)
		}
		return out
	default:
		return v
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
