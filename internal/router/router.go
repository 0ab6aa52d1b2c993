// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/fragnav/internal/dom"
	"github.com/staranto/fragnav/internal/history"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/rewrite"
)

const loadingFragment = `<div class="loading">Loading...</div>`

// Phase is the router's position in its state machine.
type Phase int

const (
	Idle Phase = iota
	Loading
	Displayed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is the phase and the section it refers to.
type State struct {
	Phase   Phase
	Section string
}

// Loader is the fragment source. It never fails; failures come back as an
// error fragment.
type Loader interface {
	Load(ctx context.Context, path string) string
}

// History is the navigation boundary.
type History interface {
	PushState(state any, title string, url string)
	OnHashChange(key string, fn history.HashChangeFunc)
}

// SubSelector switches the roster's tabs.
type SubSelector interface {
	Bind() int
	Select(ctx context.Context, tabID string) error
}

// Router owns the current section pointer for one page.
type Router struct {
	doc      *dom.Document
	loader   Loader
	hist     History
	tabs     SubSelector
	resolver pathres.Resolver
	page     pathres.Page

	mainRegion     string
	defaultSection string
	rosterSection  string
	rosterTab      string
	sectionPath    func(string) string

	mu      sync.Mutex
	current string
	state   State
	gen     uint64
}

// New returns a Router for doc. The page is classified once, from the
// location and markup doc has now.
func New(doc *dom.Document, loader Loader, hist History, opts ...Option) *Router {
	r := &Router{
		doc:            doc,
		loader:         loader,
		hist:           hist,
		mainRegion:     DefaultMainRegion,
		defaultSection: DefaultSection,
		rosterSection:  DefaultRoster,
		rosterTab:      DefaultRosterTab,
		sectionPath:    pathres.SectionPath,
	}
	for _, opt := range opts {
		opt(r)
	}

	hasMain := doc.ElementByID(r.mainRegion) != nil
	r.page = r.resolver.Classify(doc.Location().Path, hasMain)
	log.Debugf("router: %s page %s depth=%d", r.page.Kind(), r.page.Path, r.page.Depth)
	return r
}

// Page returns the classification made at construction.
func (r *Router) Page() pathres.Page {
	return r.page
}

// Resolver returns the page-relative path resolver.
func (r *Router) Resolver() pathres.Resolver {
	return r.resolver
}

// DefaultSection returns the section shown for an empty hash.
func (r *Router) DefaultSection() string {
	return r.defaultSection
}

// Current returns the last successfully displayed section, or "".
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// State returns the router's state.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// RequestSection displays section id. Requesting the section already
// displayed does nothing. The Loader's error fragment is displayed like any
// other content; only structural failures, such as a missing main region or
// a panic while switching, return a *SectionError. A request overtaken by a
// newer one returns ErrSuperseded without touching the page.
func (r *Router) RequestSection(ctx context.Context, id string) (err error) {
	log.Debugf("loading section: %s", id)

	r.mu.Lock()
	if r.current == id {
		r.mu.Unlock()
		return nil
	}
	r.gen++
	gen := r.gen
	r.state = State{Phase: Loading, Section: id}
	r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = r.fail(gen, id, fmt.Errorf("panic: %v", p))
		}
	}()

	main := r.doc.ElementByID(r.mainRegion)
	if main == nil {
		return r.fail(gen, id, ErrNoMainRegion)
	}
	if err := main.SetInnerHTML(loadingFragment); err != nil {
		return r.fail(gen, id, err)
	}

	path := r.sectionPath(id)
	log.Debugf("section path: %s", path)
	content := r.loader.Load(ctx, path)

	if err := r.commit(gen, id, main, content); err != nil {
		if errors.Is(err, ErrSuperseded) {
			log.Debugf("section %s superseded", id)
			return err
		}
		return r.fail(gen, id, err)
	}

	if r.tabs != nil {
		r.tabs.Bind()
		if id == r.rosterSection {
			if err := r.tabs.Select(ctx, r.rosterTab); err != nil {
				log.WithError(err).Warnf("roster tab %s", r.rosterTab)
			}
		}
	}
	return nil
}

// commit renders content and records id if gen is still the newest request.
func (r *Router) commit(gen uint64, id string, main *dom.Element, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return ErrSuperseded
	}
	if !main.Attached() {
		return ErrNoMainRegion
	}
	if err := main.SetInnerHTML(content); err != nil {
		return err
	}

	r.hist.PushState(nil, "", "#"+id)
	r.current = id
	r.state = State{Phase: Displayed, Section: id}
	return nil
}

// fail renders the not found fragment where possible and records the error
// state. The current section and history are left alone.
func (r *Router) fail(gen uint64, id string, cause error) error {
	serr := &SectionError{Section: id, Err: cause}
	log.WithError(cause).Errorf("error loading section %s", id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return serr
	}
	r.state = State{Phase: Failed, Section: id}

	if main := r.doc.ElementByID(r.mainRegion); main != nil {
		if err := main.SetInnerHTML(NotFoundFragment(id)); err != nil {
			log.WithError(err).Warn("failed to render section error")
		}
	}
	return serr
}

// NotFoundFragment is rendered when section id could not be displayed.
func NotFoundFragment(id string) string {
	return fmt.Sprintf(`<div class="error-message">Section not found: %s</div>`, html.EscapeString(id))
}

// Initialize loads the page's shared components. On the entry page it also
// displays the section named by the hash, or the default section, and starts
// following hash changes.
func (r *Router) Initialize(ctx context.Context) error {
	log.Debugf("initializing %s page %s", r.page.Kind(), r.page.Path)
	if r.page.Nested {
		return r.initNested(ctx)
	}
	return r.initRoot(ctx)
}

func (r *Router) initRoot(ctx context.Context) error {
	dir := r.resolver.PageComponentDir(r.page)
	r.fillContainer(ctx, HeaderContainer, dir+"header.html")
	r.fillContainer(ctx, FooterContainer, dir+"footer.html")

	hash := r.doc.Location().Hash
	if hash == "" {
		hash = r.defaultSection
	}
	log.Debugf("initial hash: %s", hash)
	err := r.RequestSection(ctx, hash)

	r.hist.OnHashChange("router", func(ctx context.Context, hash string) {
		if hash == "" {
			hash = r.defaultSection
		}
		if err := r.RequestSection(ctx, hash); err != nil && !errors.Is(err, ErrSuperseded) {
			log.WithError(err).Warnf("hash change to %s", hash)
		}
	})
	return err
}

func (r *Router) fillContainer(ctx context.Context, id string, path string) {
	el := r.doc.ElementByID(id)
	if el == nil {
		log.WithField("path", path).Warnf("no %s element found", id)
		return
	}
	if err := el.SetInnerHTML(r.loader.Load(ctx, path)); err != nil {
		log.WithError(err).Errorf("error loading %s", path)
	}
}

func (r *Router) initNested(ctx context.Context) error {
	dir := r.resolver.PageComponentDir(r.page)

	headerPath := dir + "header.html"
	log.Debugf("header path: %s", headerPath)
	header := r.loader.Load(ctx, headerPath)
	rewritten, n, err := rewrite.HashLinks(header, r.resolver.EntryPage(r.page.Path))
	if err != nil {
		log.WithError(err).Warnf("header links left as loaded")
	} else {
		log.Debugf("rewrote %d header links", n)
		header = rewritten
	}

	var errs []error
	if err := r.replaceTag("header", headerPath, header); err != nil {
		errs = append(errs, err)
	}

	footerPath := dir + "footer.html"
	log.Debugf("footer path: %s", footerPath)
	if err := r.replaceTag("footer", footerPath, r.loader.Load(ctx, footerPath)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// replaceTag swaps the page's first tag element for content. A page without
// the element is left as is.
func (r *Router) replaceTag(tag string, path string, content string) error {
	el := r.doc.QueryTag(tag)
	if el == nil {
		log.WithField("path", path).Warnf("no %s element found", tag)
		return nil
	}
	if err := el.ReplaceWith(content); err != nil {
		return fmt.Errorf("failed to replace %s: %w", tag, err)
	}
	log.Debugf("%s updated from %s", tag, path)
	return nil
}
