package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	ltable "charm.land/lipgloss/v2/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/contactpicker/internal/ui"
)

// Output formats accepted by -o.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTOML  = "toml"
	outputCSV   = "csv"
)

var (
	dataFormats  = []string{outputJSON, outputYAML, outputTOML}
	tableFormats = []string{outputTable, outputJSON, outputYAML, outputTOML, outputCSV}
)

func checkFormat(format string, allowed []string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q (use %s)", format, strings.Join(allowed, "|"))
}

// writeData encodes v as json, yaml or toml.
func writeData(w io.Writer, format string, v any) error {
	switch format {
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
	case outputTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return fmt.Errorf("toml output needs a table at the top level: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return checkFormat(format, dataFormats)
	}
}

// grid is tabular output: a header row plus data rows.
type grid struct {
	headers []string
	rows    [][]string
}

// writeGrid renders g as a bordered table or as CSV.
func writeGrid(w io.Writer, format string, g grid) error {
	switch format {
	case outputCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(g.headers); err != nil {
			return err
		}
		if err := cw.WriteAll(g.rows); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case outputTable:
		_, err := fmt.Fprintln(w, renderGrid(g))
		return err
	default:
		return fmt.Errorf("unsupported grid format %q", format)
	}
}

func renderGrid(g grid) string {
	th := ui.CurrentTheme()
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	if !th.NoColor {
		header = header.Foreground(th.Accent)
	}
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		Headers(g.headers...).
		Rows(g.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return header
			}
			return cell
		})
	if !th.NoColor {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(th.Border))
	}
	return t.String()
}
