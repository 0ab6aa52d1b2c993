// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/fragnav/internal/config"
)

// Options are the presentation settings shared by every command.
type Options struct {
	Format  string
	Filter  string
	Sort    string
	Columns string
	Titles  bool
	Color   bool
}

// OptionsFromCommand reads the global output flags from cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Columns: cmd.String("columns"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
	}
}

// SliceDiceSpit filters, sorts and renders rows according to opts. columns
// names the command's default columns, in display order, and opts.Columns
// may reshape them. Raw output dumps the rows untouched as JSON.
func SliceDiceSpit(rows []map[string]interface{}, columns []string, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	// If raw, just dump it and go home.
	if opts.Format == "raw" {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	cols, err := ParseColumns(columns, opts.Columns)
	if err != nil {
		return fmt.Errorf("--columns: %w", err)
	}

	dataset := FilterDataset(gjson.ParseBytes(raw), cols.Keys(), opts.Filter)
	SortDataset(dataset, opts.Sort)
	dataset = cols.Project(dataset)
	log.Debugf("emitting %d of %d rows as %s", len(dataset), len(rows), opts.Format)

	switch opts.Format {
	case "json":
		out, err := json.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		TableWriter(dataset, cols.Titles(), opts, w)
	}
	return nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, columns []string, opts Options, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t.Render())
}

// DumpColumns lists the columns a command emits, for --schema.
func DumpColumns(w io.Writer, name string, columns []string) {
	fmt.Fprintln(w, "Columns for", name, "--")
	for _, col := range columns {
		fmt.Fprintln(w, col)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Any column may be used with --filter and --sort.")
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Counts and statuses only; no real floats are emitted.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
