// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/fragnav/internal/config"
	"github.com/staranto/fragnav/internal/site"
)

// SiteSpec locates the site a command works on.
type SiteSpec struct {
	Root  string
	Base  string
	Entry string
}

// SectionSpec names the sections with special handling.
type SectionSpec struct {
	Default   string
	Roster    string
	RosterTab string
}

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	SiteSpec
	SectionSpec
	StartingDir string
}

// SiteOptions returns the options for building a site context.
func (m Meta) SiteOptions() site.Options {
	return site.Options{
		Base:           m.Base,
		Entry:          m.Entry,
		DefaultSection: m.Default,
		RosterSection:  m.Roster,
		RosterTab:      m.RosterTab,
	}
}
