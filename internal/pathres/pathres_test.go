// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pathres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionPath(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"opd", "SECTIONS/DATABASES/acaan.html"},
		{"heros-opd", "SECTIONS/DATABASES/rhsad.html"},
		{"villain-opd", "SECTIONS/DATABASES/tracks.html"},
		{"home", "SECTIONS/HOME/home.html"},
		{"Abc", "SECTIONS/ABC/Abc.html"},
		{"students", "SECTIONS/STUDENTS/students.html"},
		{"OPD", "SECTIONS/OPD/OPD.html"},
		{"heros", "SECTIONS/HEROS/heros.html"},
		{"", "SECTIONS//.html"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, SectionPath(tt.id))
		})
	}
}

func TestTeamPath(t *testing.T) {
	assert.Equal(t, "SECTIONS/STUDENTS/team-alpha.html", TeamPath("alpha"))
	assert.Equal(t, "SECTIONS/STUDENTS/team-beta.html", TeamPath("beta"))
}

func TestResolver(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		path      string
		depth     int
		component string
		root      string
	}{
		{"root slash", "", "/", 1, "COMPONENTS/", "./"},
		{"entry page", "", "/index.html", 1, "COMPONENTS/", "./"},
		{"top level page", "", "/about.html", 1, "COMPONENTS/", "./"},
		{"nested page", "", "/PAGES/9alarm.html", 2, "../COMPONENTS/", "../"},
		{"nested dir index", "", "/PAGES/", 2, "../COMPONENTS/", "../"},
		{"two levels", "", "/PAGES/EVENTS/fair.html", 3, "../../COMPONENTS/", "../../"},
		{"three levels", "", "/a/b/c/d.html", 4, "../../../COMPONENTS/", "../../../"},
		{"base root page", "/campus/", "/campus/index.html", 1, "COMPONENTS/", "./"},
		{"base without slash", "/campus", "/campus/PAGES/9alarm.html", 2, "../COMPONENTS/", "../"},
		{"base itself", "/campus/", "/campus", 1, "COMPONENTS/", "./"},
		{"outside base", "/campus/", "/other/x.html", 2, "../COMPONENTS/", "../"},
		{"prefix lookalike", "/campus/", "/campusX/x.html", 2, "../COMPONENTS/", "../"},
		{"relative path", "", "PAGES/9alarm.html", 2, "../COMPONENTS/", "../"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolver{Base: tt.base}
			assert.Equal(t, tt.depth, r.Depth(tt.path))
			assert.Equal(t, tt.component, r.ComponentDir(tt.path))
			assert.Equal(t, tt.root, r.RootPath(tt.path))
		})
	}
}

func TestResolver_EntryLink(t *testing.T) {
	r := Resolver{}
	assert.Equal(t, "./index.html", r.EntryPage("/index.html"))
	assert.Equal(t, "../index.html#foo", r.EntryLink("/PAGES/9alarm.html", "foo"))

	r = Resolver{Entry: "home.htm"}
	assert.Equal(t, "../../home.htm#opd", r.EntryLink("/a/b/c.html", "opd"))
}

func TestResolver_EntryLocation(t *testing.T) {
	assert.Equal(t, "/index.html", Resolver{}.EntryLocation())
	assert.Equal(t, "/index.html", Resolver{Base: "/"}.EntryLocation())
	assert.Equal(t, "/campus/main.html", Resolver{Base: "/campus/", Entry: "main.html"}.EntryLocation())
}

func TestResolver_PageComponentDir(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		hasMain bool
		want    string
	}{
		{"root at top level", "", "/index.html", true, "COMPONENTS/"},
		{"root under project path", "", "/campus/index.html", true, "COMPONENTS/"},
		{"root two levels down", "", "/a/b/index.html", true, "COMPONENTS/"},
		{"root under base", "/campus/", "/campus/index.html", true, "COMPONENTS/"},
		{"nested page", "", "/PAGES/9alarm.html", false, "../COMPONENTS/"},
		{"nested under project path", "", "/campus/PAGES/9alarm.html", false, "../../COMPONENTS/"},
		{"nested under base", "/campus/", "/campus/PAGES/9alarm.html", false, "../COMPONENTS/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolver{Base: tt.base}
			p := r.Classify(tt.path, tt.hasMain)
			assert.Equal(t, tt.want, r.PageComponentDir(p))
		})
	}
}

func TestResolver_Classify(t *testing.T) {
	r := Resolver{}

	p := r.Classify("/index.html", true)
	assert.False(t, p.Nested)
	assert.Equal(t, 1, p.Depth)
	assert.Equal(t, "root", p.Kind())

	p = r.Classify("/PAGES/9alarm.html", false)
	assert.True(t, p.Nested)
	assert.Equal(t, 2, p.Depth)
	assert.Equal(t, "nested", p.Kind())
}
