// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/fragnav/internal/fetch"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/site"
)

var testFiles = map[string]string{
	"index.html": `<html><body><div id="header-container"></div>` +
		`<main id="main-content"></main><div id="footer-container"></div></body></html>`,
	"PAGES/9alarm.html": `<html><body><header>stale</header><p>alarm</p>` +
		`<footer>stale</footer></body></html>`,
	"COMPONENTS/header.html": `<header><a href="#home">Home</a><a href="#students">Students</a>` +
		`<a href="#gallery">Gallery</a></header>`,
	"COMPONENTS/footer.html":            `<footer>footer</footer>`,
	"SECTIONS/HOME/home.html":           `<p>Welcome home</p>`,
	"SECTIONS/STUDENTS/students.html":   `<button class="tab-btn" data-tab="alpha">A</button><div id="team-alpha" class="team-content"></div>`,
	"SECTIONS/STUDENTS/team-alpha.html": `<p>alpha team</p>`,
}

func testFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range testFiles {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

// writeSite lays the test site out on disk for commands that take --site.
func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range testFiles {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func TestResolveRows(t *testing.T) {
	ctx := context.Background()
	res := pathres.Resolver{}

	rows := resolveRows(ctx, []string{"home", "opd"}, "/PAGES/9alarm.html", res, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "SECTIONS/HOME/home.html", rows[0]["path"])
	assert.Equal(t, "../COMPONENTS/", rows[0]["components"])
	assert.Equal(t, "../index.html#home", rows[0]["link"])
	assert.Equal(t, "SECTIONS/DATABASES/acaan.html", rows[1]["path"])
	assert.NotContains(t, rows[0], "status")

	probe := fetch.RelativeTo(fetch.NewFS(testFS()), res.EntryLocation())
	rows = resolveRows(ctx, []string{"home", "gallery"}, res.EntryLocation(), res, probe)
	assert.Equal(t, http.StatusOK, rows[0]["status"])
	assert.Equal(t, http.StatusNotFound, rows[1]["status"])
	assert.Equal(t, "COMPONENTS/", rows[1]["components"])
}

func TestListPages(t *testing.T) {
	pages, err := listPages(fetch.NewFS(testFS()), site.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/PAGES/9alarm.html", "/index.html"}, pages)

	pages, err = listPages(fetch.NewFS(testFS()), site.Options{Base: "/campus/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/campus/PAGES/9alarm.html", "/campus/index.html"}, pages)
}

func TestListPages_NotListable(t *testing.T) {
	r := fetch.Func(func(ctx context.Context, path string) (fetch.Response, error) {
		return fetch.Response{Status: http.StatusOK}, nil
	})
	pages, err := listPages(r, site.Options{Base: "/campus/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/campus/index.html"}, pages)
}

func TestChecker_Run(t *testing.T) {
	c := &checker{retriever: fetch.NewFS(testFS()), parallel: 2}
	rows, problems, err := c.run(context.Background(), []string{"/index.html", "/PAGES/9alarm.html"})
	require.NoError(t, err)

	// index: header, footer and three sections; nested: header, footer, entry.
	require.Len(t, rows, 8)
	assert.Equal(t, 1, problems)

	var failed []string
	kinds := map[string]int{}
	for _, row := range rows {
		kinds[row["kind"].(string)]++
		if !row["ok"].(bool) {
			failed = append(failed, row["target"].(string))
		}
	}
	assert.Equal(t, []string{"SECTIONS/GALLERY/gallery.html"}, failed)
	assert.Equal(t, map[string]int{"header": 2, "footer": 2, "section": 3, "entry": 1}, kinds)

	assert.Equal(t, "/PAGES/9alarm.html", rows[0]["page"])
	for _, row := range rows[:3] {
		assert.Equal(t, 2, row["depth"])
	}
}

func TestChecker_MissingPage(t *testing.T) {
	c := &checker{retriever: fetch.NewFS(testFS()), parallel: 1}
	rows, problems, err := c.run(context.Background(), []string{"/nope.html"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, problems)
	assert.Equal(t, "page", rows[0]["kind"])
}

func TestChecker_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &checker{retriever: fetch.NewFS(testFS()), parallel: 1}
	_, _, err := c.run(ctx, []string{"/index.html"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	s, err := site.Open(ctx, fetch.NewFS(testFS()), "/index.html", site.Options{})
	require.NoError(t, err)

	require.NoError(t, replay(ctx, s, []string{"students", "home"}, nil))
	assert.Equal(t, "home", s.Router.Current())

	// Each hash change records the navigation and the router's push.
	hist := historyRows(s)
	require.Len(t, hist, 5)
	assert.Equal(t, 1, hist[0]["n"])
	assert.Equal(t, "#students", hist[1]["url"])
	assert.Equal(t, "#home", hist[4]["url"])

	stats := statsRows(s)
	assert.Equal(t, "fetches", stats[0]["stat"])
	assert.Equal(t, "home", stats[4]["value"])
}

func TestValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("json", OutputValidator))
	assert.Error(t, FlagValidators("xml", OutputValidator))
	assert.Error(t, FlagValidators("--site", JammedFlagValidator))
	assert.NoError(t, FlagValidators(4, PositiveValidator))
	assert.Error(t, FlagValidators(0, PositiveValidator))
	assert.Error(t, FlagValidators("4", PositiveValidator))
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("FRAGNAV_CFG", "")
	t.Setenv("FRAGNAV_SITE", "")
	require.NoError(t, os.Unsetenv("FRAGNAV_SITE"))

	args = append([]string{"fragnav"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err = app.Run(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Resolve(t *testing.T) {
	root := writeSite(t)
	out, _, err := runApp(t, "resolve", "--site", root, "--probe", "-o", "json", "home", "gallery")
	require.NoError(t, err)
	assert.Contains(t, out, `"path":"SECTIONS/HOME/home.html"`)
	assert.Contains(t, out, `"status":404`)
}

func TestApp_ResolveNeedsIDs(t *testing.T) {
	_, _, err := runApp(t, "resolve", "--site", writeSite(t))
	assert.Error(t, err)
}

func TestApp_Check(t *testing.T) {
	out, _, err := runApp(t, "check", "--site", writeSite(t), "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s) found in 2 page(s)")
	assert.Contains(t, out, `"target":"SECTIONS/GALLERY/gallery.html"`)
}

func TestApp_Render(t *testing.T) {
	root := writeSite(t)
	out, _, err := runApp(t, "render", "--site", root, "--nav", "students", "--text")
	require.NoError(t, err)
	assert.Equal(t, "A\nalpha team\n", out)

	out, _, err = runApp(t, "render", "--site", root, "/index.html#home")
	require.NoError(t, err)
	assert.Contains(t, out, `<main id="main-content"><p>Welcome home</p></main>`)
}

func TestApp_RenderOut(t *testing.T) {
	root := writeSite(t)
	file := filepath.Join(t.TempDir(), "out.txt")

	out, _, err := runApp(t, "render", "--site", root, "--text", "--out", file)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "Welcome home\n", string(b))

	_, _, err = runApp(t, "render", "--site", root, "--out", filepath.Join(t.TempDir(), "missing", "out.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, "-", "doc"))
	require.NoError(t, writeOutput(&buf, "", "!"))
	assert.Equal(t, "doc!", buf.String())

	file := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, writeOutput(&buf, file, "<p>x</p>"))
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", string(b))
	assert.Equal(t, "doc!", buf.String())

	err = writeOutput(&buf, t.TempDir(), "x")
	require.Error(t, err)
}

func TestChecker_RootPageUnderProjectPath(t *testing.T) {
	fsys := fstest.MapFS{}
	for name, f := range testFS() {
		fsys["campus/"+name] = f
	}
	fsys["campus/COMPONENTS/header.html"] = &fstest.MapFile{Data: []byte(`<header><a href="#home">Home</a></header>`)}

	c := &checker{retriever: fetch.NewFS(fsys), parallel: 1}
	rows, problems, err := c.run(context.Background(), []string{"/campus/index.html"})
	require.NoError(t, err)
	assert.Equal(t, 0, problems)

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 2, row["depth"])
		assert.True(t, row["ok"].(bool), row["target"])
	}
	assert.Equal(t, "COMPONENTS/header.html", rows[0]["target"])
	assert.Equal(t, "COMPONENTS/footer.html", rows[1]["target"])
}

func TestApp_Completion(t *testing.T) {
	out, _, err := runApp(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _fragnav fragnav")

	out, _, err = runApp(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef fragnav")
}

func TestApp_Schema(t *testing.T) {
	out, _, err := runApp(t, "resolve", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "components")
}

func TestApp_BadColumns(t *testing.T) {
	_, _, err := runApp(t, "resolve", "--site", writeSite(t), "--columns", "id,!", "home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--columns")
}

func TestApp_Columns(t *testing.T) {
	out, _, err := runApp(t, "resolve", "--site", writeSite(t), "-o", "json", "-a", "id:section:u,link", "home")
	require.NoError(t, err)
	assert.Equal(t, `[{"link":"./index.html#home","section":"HOME"}]`+"\n", out)
}
