// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Column is one output column. Key is the row key (a gjson path) used for
// extraction, filtering and sorting; Title is the key it is emitted under.
type Column struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title"`
	Include   bool   `yaml:"include"`
	Transform string `yaml:"transform"`
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Apply runs the column's transform over a value. Only strings are
// transformed: u/U upper cases, l/L lower cases, and a number truncates to
// that length. A negative length keeps both ends and elides the middle. When
// several case or length specs are present, the last one wins.
func (c Column) Apply(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok || c.Transform == "" {
		return value
	}

	lastL := strings.LastIndexAny(c.Transform, "lL")
	lastU := strings.LastIndexAny(c.Transform, "uU")
	if lastL > lastU {
		s = strings.ToLower(s)
	} else if lastU > lastL {
		s = strings.ToUpper(s)
	}

	if match := lengthRegex.FindAllString(c.Transform, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := l
		if abs < 0 {
			abs = -abs
		}
		if len(s) > abs {
			if l < 0 {
				keep := max(abs/2-1, 0)
				s = s[:keep] + ".." + s[len(s)-keep:]
			} else {
				s = s[:l]
			}
		}
	}
	return s
}

// Columns is an ordered column list.
type Columns []Column

// ParseColumns applies a --columns spec to a command's default columns.
//
// The spec is a comma-separated list of key[:title[:transform]]. A leading
// '!' hides a column that is still available to --filter and --sort. A "*"
// entry keeps the defaults and its transform applies to every column;
// without it, only the listed columns are shown, in the order given.
func ParseColumns(defaults []string, spec string) (Columns, error) {
	spec = strings.TrimSpace(spec)

	var cols Columns
	keepDefaults := spec == "" || spec == "*"
	var global string
	for _, part := range strings.Split(spec, ",") {
		if key, rest, _ := strings.Cut(strings.TrimSpace(part), ":"); key == "*" {
			keepDefaults = true
			if _, t, ok := strings.Cut(rest, ":"); ok {
				global = strings.TrimSpace(t)
			}
		}
	}

	if keepDefaults {
		for _, key := range defaults {
			cols = append(cols, Column{Key: key, Title: key, Include: true, Transform: global})
		}
	}
	if spec == "" || spec == "*" {
		return cols, nil
	}

specloop:
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if fields[0] == "*" {
			continue
		}

		col := Column{Key: strings.TrimSpace(fields[0]), Include: true}
		if strings.HasPrefix(col.Key, "!") {
			col.Include = false
			col.Key = col.Key[1:]
		}
		if col.Key == "" {
			return nil, errors.New("empty column key")
		}
		if len(fields) > 3 {
			return nil, fmt.Errorf("invalid column spec %q", part)
		}

		segments := strings.Split(col.Key, ".")
		col.Title = segments[len(segments)-1]
		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			col.Title = strings.TrimSpace(fields[1])
		}
		col.Transform = global
		if len(fields) > 2 {
			col.Transform += strings.TrimSpace(fields[2])
		}

		for i := range cols {
			if cols[i].Key == col.Key {
				cols[i] = col
				continue specloop
			}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Keys returns every column key, hidden or not.
func (cs Columns) Keys() []string {
	keys := make([]string, 0, len(cs))
	for _, c := range cs {
		keys = append(keys, c.Key)
	}
	return keys
}

// Titles returns the titles of the shown columns.
func (cs Columns) Titles() []string {
	var titles []string
	for _, c := range cs {
		if c.Include {
			titles = append(titles, c.Title)
		}
	}
	return titles
}

// Project rekeys rows by column title, dropping hidden columns and applying
// transforms.
func (cs Columns) Project(rows []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		projected := make(map[string]interface{}, len(cs))
		for _, c := range cs {
			if c.Include {
				projected[c.Title] = c.Apply(row[c.Key])
			}
		}
		out = append(out, projected)
	}
	return out
}

// String returns the spec form of the list.
func (cs Columns) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		key := c.Key
		if !c.Include {
			key = "!" + key
		}
		parts = append(parts, fmt.Sprintf("%s:%s:%s", key, c.Title, c.Transform))
	}
	return strings.Join(parts, ",")
}
