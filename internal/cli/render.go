package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// tableWriter collects the rows of a text rendering.
type tableWriter struct {
	t table.Writer
}

func (tw tableWriter) header(cols ...any) {
	tw.t.AppendHeader(table.Row(cols))
}

func (tw tableWriter) row(cols ...any) {
	tw.t.AppendRow(table.Row(cols))
}

// render writes v in the configured output format. Text output is produced
// by fill.
func (s *session) render(w io.Writer, v any, fill func(tableWriter)) error {
	switch format := s.v.GetString(cfgKeyOutput); format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputText, "":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		fill(tableWriter{t: t})
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", format)
	}
}
