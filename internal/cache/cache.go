// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sort"
	"sync"
)

// Entry represents a cached fragment.
type Entry struct {
	// Key is the path the fragment was requested with.
	Key string
	// Data is the fragment text exactly as retrieved.
	Data string
}

// Fragments maps a request path to previously fetched fragment content.
type Fragments struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New returns an empty cache.
func New() *Fragments {
	return &Fragments{entries: make(map[string]string)}
}

// Read returns the entry stored under key.
func (f *Fragments) Read(key string) (*Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, ok := f.entries[key]
	if !ok {
		return nil, false
	}
	return &Entry{Key: key, Data: data}, true
}

// Write stores data under key, replacing any previous value.
func (f *Fragments) Write(key string, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = data
}

// Len returns the number of cached fragments.
func (f *Fragments) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Size returns the total number of cached bytes.
func (f *Fragments) Size() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var n uint64
	for _, v := range f.entries {
		n += uint64(len(v))
	}
	return n
}

// Keys returns the cached paths in sorted order.
func (f *Fragments) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
