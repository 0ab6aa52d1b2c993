// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type columnsTestData struct {
	Parse []struct {
		Name     string   `yaml:"name"`
		Defaults []string `yaml:"defaults"`
		Spec     string   `yaml:"spec"`
		Want     Columns  `yaml:"want"`
		WantErr  bool     `yaml:"wantErr"`
	} `yaml:"parse"`
	Apply []struct {
		Name      string      `yaml:"name"`
		Transform string      `yaml:"transform"`
		Input     interface{} `yaml:"input"`
		Want      interface{} `yaml:"want"`
	} `yaml:"apply"`
}

func loadColumnsTestData(t *testing.T) columnsTestData {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/columns.yaml")
	require.NoError(t, err)

	var td columnsTestData
	require.NoError(t, yaml.Unmarshal(data, &td))
	return td
}

func TestParseColumns(t *testing.T) {
	for _, tt := range loadColumnsTestData(t).Parse {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := ParseColumns(tt.Defaults, tt.Spec)
			if tt.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestColumn_Apply(t *testing.T) {
	for _, tt := range loadColumnsTestData(t).Apply {
		t.Run(tt.Name, func(t *testing.T) {
			c := Column{Transform: tt.Transform}
			assert.Equal(t, tt.Want, c.Apply(tt.Input))
		})
	}
}

func TestColumns_Project(t *testing.T) {
	cols, err := ParseColumns([]string{"id", "path", "status"}, "*,path:fragment:-10,!status")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "fragment"}, cols.Titles())
	assert.Equal(t, []string{"id", "path", "status"}, cols.Keys())
	assert.Equal(t, "id:id:,path:fragment:-10,!status:status:", cols.String())

	rows := cols.Project([]map[string]interface{}{
		{"id": "home", "path": "SECTIONS/HOME/home.html", "status": 200.0},
	})
	assert.Equal(t, []map[string]interface{}{{"id": "home", "fragment": "SECT..html"}}, rows)
}

func TestSliceDiceSpit_Columns(t *testing.T) {
	rows := []map[string]interface{}{
		{"id": "home", "path": "SECTIONS/HOME/home.html", "status": 200},
		{"id": "opd", "path": "SECTIONS/DATABASES/acaan.html", "status": 404},
	}

	var buf bytes.Buffer
	opts := Options{Format: "text", Titles: true, Columns: "id::u,!status", Filter: "status>300"}
	require.NoError(t, SliceDiceSpit(rows, []string{"id", "path", "status"}, opts, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"id"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"OPD"}, strings.Fields(lines[1]))

	err := SliceDiceSpit(rows, []string{"id"}, Options{Format: "json", Columns: "!"}, &buf)
	assert.Error(t, err)
}
