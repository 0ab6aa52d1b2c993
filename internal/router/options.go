// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"github.com/staranto/fragnav/internal/pathres"
)

const (
	// DefaultMainRegion is the id of the main content region.
	DefaultMainRegion = "main-content"
	// DefaultSection is shown when the hash is empty.
	DefaultSection = "home"
	// DefaultRoster is the section that carries team tabs.
	DefaultRoster = "students"
	// DefaultRosterTab is selected whenever the roster is displayed.
	DefaultRosterTab = "alpha"

	// HeaderContainer receives the shared header on the entry page.
	HeaderContainer = "header-container"
	// FooterContainer receives the shared footer on the entry page.
	FooterContainer = "footer-container"
)

// Option customizes a Router.
type Option func(*Router)

// WithSubSelector sets the tab switcher triggered by the roster section.
func WithSubSelector(tabs SubSelector) Option {
	return func(r *Router) { r.tabs = tabs }
}

// WithResolver sets the page-relative path resolver.
func WithResolver(res pathres.Resolver) Option {
	return func(r *Router) { r.resolver = res }
}

// WithDefaultSection sets the section shown for an empty hash. Empty values
// are ignored.
func WithDefaultSection(id string) Option {
	return func(r *Router) {
		if id != "" {
			r.defaultSection = id
		}
	}
}

// WithRoster sets the roster section and the tab selected when it is shown.
// Empty values are ignored.
func WithRoster(section string, tab string) Option {
	return func(r *Router) {
		if section != "" {
			r.rosterSection = section
		}
		if tab != "" {
			r.rosterTab = tab
		}
	}
}

// WithMainRegion sets the id of the main content region. Empty values are
// ignored.
func WithMainRegion(id string) Option {
	return func(r *Router) {
		if id != "" {
			r.mainRegion = id
		}
	}
}

// WithSectionPath replaces the section id to fragment path mapping.
func WithSectionPath(fn func(string) string) Option {
	return func(r *Router) {
		if fn != nil {
			r.sectionPath = fn
		}
	}
}
