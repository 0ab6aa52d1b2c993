// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package history is the navigation boundary: an append-only list of
// entries plus hash-change notifications.
package history

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
)

// Entry is one navigation record, as given to PushState.
type Entry struct {
	State any
	Title string
	URL   string
}

// HashChangeFunc handles a hash change. hash has no leading '#'.
type HashChangeFunc func(ctx context.Context, hash string)

// Location is the part of the document the history keeps in sync.
type Location interface {
	SetHash(hash string)
}

// Memory is an in-memory history. Entries are only ever appended.
type Memory struct {
	mu        sync.Mutex
	location  Location
	entries   []Entry
	listeners map[string]HashChangeFunc
}

// New returns an empty history that updates loc on every entry. loc may be
// nil.
func New(loc Location) *Memory {
	return &Memory{
		location:  loc,
		entries:   make([]Entry, 0),
		listeners: make(map[string]HashChangeFunc),
	}
}

// PushState appends an entry and updates the location hash from url. Like
// the platform call, it does not fire hash-change listeners.
func (m *Memory) PushState(state any, title string, url string) {
	m.mu.Lock()
	m.entries = append(m.entries, Entry{State: state, Title: title, URL: url})
	m.mu.Unlock()

	if m.location != nil {
		if _, hash, ok := strings.Cut(url, "#"); ok {
			m.location.SetHash(hash)
		}
	}
	log.Debugf("history: push %s", url)
}

// OnHashChange registers fn under key. Registering the same key again
// replaces the previous handler.
func (m *Memory) OnHashChange(key string, fn HashChangeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[key] = fn
}

// RemoveHashChange drops the handler registered under key.
func (m *Memory) RemoveHashChange(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, key)
}

// Navigate simulates the user changing the hash: a new entry is appended,
// the location is updated, and every listener runs in key order on the
// calling goroutine.
func (m *Memory) Navigate(ctx context.Context, hash string) {
	hash = strings.TrimPrefix(hash, "#")

	m.mu.Lock()
	m.entries = append(m.entries, Entry{URL: "#" + hash})
	keys := make([]string, 0, len(m.listeners))
	for k := range m.listeners {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fns := make([]HashChangeFunc, 0, len(keys))
	for _, k := range keys {
		fns = append(fns, m.listeners[k])
	}
	m.mu.Unlock()

	if m.location != nil {
		m.location.SetHash(hash)
	}
	log.Debugf("history: hashchange #%s", hash)

	for _, fn := range fns {
		fn(ctx, hash)
	}
}

// Entries returns a copy of the entries, oldest first.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Peek returns the newest entry, or nil when empty.
func (m *Memory) Peek() *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return nil
	}
	e := m.entries[len(m.entries)-1]
	return &e
}
