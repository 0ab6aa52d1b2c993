// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tabs switches between the team tabs of the roster section. Each
// tab's fragment is fetched the first time the tab is selected and the
// container is marked so it is never fetched again.
package tabs

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/fragnav/internal/dom"
	"github.com/staranto/fragnav/internal/pathres"
)

const (
	// ContentClass marks every tab container.
	ContentClass = "team-content"
	// TriggerClass marks every tab button.
	TriggerClass = "tab-btn"
	// TabAttr names the tab a trigger selects.
	TabAttr = "data-tab"
	// LoadedAttr marks a container whose fragment has been injected.
	LoadedAttr = "data-loaded"
	// ActiveClass marks the selected container and trigger.
	ActiveClass = "active"

	failedFragment = `<div class="error-message">Failed to load team content</div>`
)

// legacyHandler extracts the tab id from onclick="switchTeam('alpha')".
var legacyHandler = regexp.MustCompile(`switchTeam\(\s*['"]([^'"]+)['"]\s*\)`)

// Loader is the fragment source.
type Loader interface {
	Load(ctx context.Context, path string) string
}

// Switcher selects tabs inside one document.
type Switcher struct {
	doc    *dom.Document
	loader Loader

	mu       sync.Mutex
	triggers map[string]*dom.Element
}

// New returns a Switcher for doc with no registered triggers.
func New(doc *dom.Document, loader Loader) *Switcher {
	return &Switcher{
		doc:      doc,
		loader:   loader,
		triggers: make(map[string]*dom.Element),
	}
}

// Register binds the trigger control for tabID.
func (s *Switcher) Register(tabID string, trigger *dom.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers[tabID] = trigger
}

// Bind registers every trigger in the document, taking the tab id from its
// data-tab attribute or its legacy switchTeam('<id>') handler. Triggers
// that were replaced since the last Bind are dropped. It returns the number
// of registered triggers.
func (s *Switcher) Bind() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, el := range s.triggers {
		if !el.Attached() {
			delete(s.triggers, id)
		}
	}

	for _, el := range s.doc.QueryClass(TriggerClass) {
		id, ok := el.Attr(TabAttr)
		if !ok {
			onclick, _ := el.Attr("onclick")
			m := legacyHandler.FindStringSubmatch(onclick)
			if m == nil {
				continue
			}
			id = m[1]
		}
		s.triggers[id] = el
	}
	return len(s.triggers)
}

// Select shows tabID and hides every other tab. The tab's fragment is
// loaded on first selection only. A missing container is not an error.
func (s *Switcher) Select(ctx context.Context, tabID string) error {
	for _, content := range s.doc.QueryClass(ContentClass) {
		content.RemoveClass(ActiveClass)
		content.SetDisplay("none")
	}
	for _, btn := range s.doc.QueryClass(TriggerClass) {
		btn.RemoveClass(ActiveClass)
	}

	s.mu.Lock()
	trigger := s.triggers[tabID]
	s.mu.Unlock()
	if trigger != nil {
		trigger.AddClass(ActiveClass)
	}

	selected := s.doc.ElementByID("team-" + tabID)
	if selected == nil {
		log.Debugf("tabs: no container for team %s", tabID)
		return nil
	}

	if !selected.HasAttr(LoadedAttr) {
		content := s.loader.Load(ctx, pathres.TeamPath(tabID))
		if err := selected.SetInnerHTML(content); err != nil {
			log.WithError(err).Errorf("error loading team %s", tabID)
			if ferr := selected.SetInnerHTML(failedFragment); ferr != nil {
				return fmt.Errorf("team %s: %w", tabID, ferr)
			}
			return fmt.Errorf("team %s: %w", tabID, err)
		}
		selected.SetAttr(LoadedAttr, "true")
	}

	selected.AddClass(ActiveClass)
	selected.SetDisplay("block")
	return nil
}

// Active returns the id of the visible tab, or "".
func (s *Switcher) Active() string {
	for _, content := range s.doc.QueryClass(ContentClass) {
		if content.HasClass(ActiveClass) {
			id := content.ID()
			if len(id) > len("team-") {
				return id[len("team-"):]
			}
		}
	}
	return ""
}
