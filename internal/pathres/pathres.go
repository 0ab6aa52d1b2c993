// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package pathres maps section identifiers to fragment paths and computes
// page-relative paths to the shared components and the entry page.
//
// Page-relative paths use depth counting: the number of path segments below
// the site base decides how many levels to climb. A root page reaches the
// shared components directly, whatever its depth.
package pathres

import (
	"strings"
)

const (
	// ComponentsRoot holds the shared header and footer fragments.
	ComponentsRoot = "COMPONENTS/"
	// SectionsRoot holds one directory per section.
	SectionsRoot = "SECTIONS/"
	// DefaultEntry is the entry page file name.
	DefaultEntry = "index.html"
)

// databaseSections are identifiers whose fragments do not follow the
// SECTIONS/<ID>/<id>.html layout. They are checked before the uniform rule.
var databaseSections = map[string]string{
	"opd":         SectionsRoot + "DATABASES/acaan.html",
	"heros-opd":   SectionsRoot + "DATABASES/rhsad.html",
	"villain-opd": SectionsRoot + "DATABASES/tracks.html",
}

// SectionPath returns the fragment path for a section identifier.
func SectionPath(id string) string {
	if p, ok := databaseSections[id]; ok {
		return p
	}
	return SectionsRoot + strings.ToUpper(id) + "/" + id + ".html"
}

// TeamPath returns the fragment path for a roster tab.
func TeamPath(tab string) string {
	return SectionsRoot + "STUDENTS/team-" + tab + ".html"
}

// Page classifies the page a session was started on.
type Page struct {
	// Path is the location path at load time.
	Path string
	// Nested is true when the page has no main content region.
	Nested bool
	// Depth is the number of segments below the site base.
	Depth int
}

// Kind names the page class for display.
func (p Page) Kind() string {
	if p.Nested {
		return "nested"
	}
	return "root"
}

// Resolver computes page-relative paths. The zero value serves a site at
// "/" with index.html as its entry page.
type Resolver struct {
	// Base is the URL path the site is served under, e.g. "/campus/".
	Base string
	// Entry is the entry page file name.
	Entry string
}

// Classify builds the Page for a location path. hasMain reports whether the
// page carries the main content region.
func (r Resolver) Classify(path string, hasMain bool) Page {
	return Page{Path: path, Nested: !hasMain, Depth: r.Depth(path)}
}

// Depth counts the segments of path below the site base: "/index.html" and
// "/" are 1, "/PAGES/9alarm.html" is 2.
func (r Resolver) Depth(path string) int {
	base := strings.TrimSuffix(r.Base, "/")
	rel := path
	if base != "" && (rel == base || strings.HasPrefix(rel, base+"/")) {
		rel = strings.TrimPrefix(rel, base)
	}
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return strings.Count(rel, "/")
}

// climb returns the "../" prefix that leads from path back to the site root.
func (r Resolver) climb(path string) string {
	depth := r.Depth(path)
	if depth <= 1 {
		return ""
	}
	return strings.Repeat("../", depth-1)
}

// ComponentDir returns the directory holding the shared fragments, relative
// to the page at path.
func (r Resolver) ComponentDir(path string) string {
	return r.climb(path) + ComponentsRoot
}

// PageComponentDir returns the components directory for a classified page.
// A root page loads from ComponentsRoot without climbing; a nested page
// climbs by depth.
func (r Resolver) PageComponentDir(p Page) string {
	if !p.Nested {
		return ComponentsRoot
	}
	return r.ComponentDir(p.Path)
}

// RootPath returns the relative path from the page at path back to the site
// root: "./" at the top level.
func (r Resolver) RootPath(path string) string {
	if up := r.climb(path); up != "" {
		return up
	}
	return "./"
}

// EntryPage returns the relative path of the entry page.
func (r Resolver) EntryPage(path string) string {
	return r.RootPath(path) + r.entry()
}

// EntryLink returns the entry page link for a section hash.
func (r Resolver) EntryLink(path string, hash string) string {
	return r.EntryPage(path) + "#" + hash
}

// EntryLocation returns the site-absolute path of the entry page, e.g.
// "/campus/index.html".
func (r Resolver) EntryLocation() string {
	base := strings.Trim(r.Base, "/")
	if base == "" {
		return "/" + r.entry()
	}
	return "/" + base + "/" + r.entry()
}

func (r Resolver) entry() string {
	if r.Entry == "" {
		return DefaultEntry
	}
	return r.Entry
}
