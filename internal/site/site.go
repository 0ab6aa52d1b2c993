// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package site builds the per-page context: one document, one loader, one
// history, one tab switcher and one router, created once and handed to
// whoever drives the page.
package site

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/fragnav/internal/dom"
	"github.com/staranto/fragnav/internal/fetch"
	"github.com/staranto/fragnav/internal/history"
	"github.com/staranto/fragnav/internal/loader"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/rewrite"
	"github.com/staranto/fragnav/internal/router"
	"github.com/staranto/fragnav/internal/tabs"
)

// Options configures a Context. Zero values fall back to the router's
// defaults.
type Options struct {
	Base           string
	Entry          string
	DefaultSection string
	RosterSection  string
	RosterTab      string
}

func (o Options) resolver() pathres.Resolver {
	return pathres.Resolver{Base: o.Base, Entry: o.Entry}
}

// Context is everything one page session needs.
type Context struct {
	Document *dom.Document
	Loader   *loader.Loader
	History  *history.Memory
	Tabs     *tabs.Switcher
	Router   *router.Router
}

// Open retrieves the page at location (a site-absolute path, optionally
// with a #hash), parses it and builds its Context.
func Open(ctx context.Context, r fetch.Retriever, location string, opts Options) (*Context, error) {
	loc := dom.ParseLocation(location)
	site := fetch.Under(r, opts.Base)

	markup, err := fetch.Get(ctx, site, loc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page %s: %w", loc.Path, err)
	}

	doc, err := dom.Parse(markup, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to open page %s: %w", loc.Path, err)
	}
	return newContext(doc, site, opts), nil
}

// New builds a Context for an already parsed document. Fragment paths are
// resolved against the document's location.
func New(doc *dom.Document, r fetch.Retriever, opts Options) *Context {
	return newContext(doc, fetch.Under(r, opts.Base), opts)
}

func newContext(doc *dom.Document, r fetch.Retriever, opts Options) *Context {
	l := loader.New(fetch.RelativeTo(r, doc.Location().Path))
	h := history.New(doc)
	t := tabs.New(doc, l)
	rt := router.New(doc, l, h,
		router.WithSubSelector(t),
		router.WithResolver(opts.resolver()),
		router.WithDefaultSection(opts.DefaultSection),
		router.WithRoster(opts.RosterSection, opts.RosterTab),
	)
	log.Debugf("site: context for %s", doc.Location())
	return &Context{Document: doc, Loader: l, History: h, Tabs: t, Router: rt}
}

// Initialize runs page initialization.
func (c *Context) Initialize(ctx context.Context) error {
	return c.Router.Initialize(ctx)
}

// Navigate changes the hash as a user would.
func (c *Context) Navigate(ctx context.Context, hash string) {
	c.History.Navigate(ctx, hash)
}

// SelectTab switches the roster tab.
func (c *Context) SelectTab(ctx context.Context, tabID string) error {
	c.Tabs.Bind()
	return c.Tabs.Select(ctx, tabID)
}

// Render serializes the document.
func (c *Context) Render() (string, error) {
	return c.Document.Render()
}

// MainText returns the readable text of the main content region, or "" on a
// nested page.
func (c *Context) MainText() string {
	el := c.Document.ElementByID(router.DefaultMainRegion)
	if el == nil {
		return ""
	}
	return el.Text()
}

// Sections returns the section ids the page header links to, in order.
// Headers on nested pages link to the entry page instead and yield none.
func (c *Context) Sections() ([]string, error) {
	header := c.Document.ElementByID(router.HeaderContainer)
	if header == nil {
		header = c.Document.QueryTag("header")
	}
	if header == nil {
		return nil, nil
	}

	markup, err := header.InnerHTML()
	if err != nil {
		return nil, err
	}
	return rewrite.HashTargets(markup)
}
