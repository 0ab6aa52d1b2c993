// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package loader fetches fragments through a Retriever and memoizes them for
// the lifetime of a page session.
package loader

import (
	"context"
	"fmt"
	"html"
	"sync/atomic"

	"github.com/apex/log"

	"github.com/staranto/fragnav/internal/cache"
	"github.com/staranto/fragnav/internal/fetch"
)

// Loader returns fragment text for a path. Every call returns something that
// can be rendered: failures come back as an error fragment.
type Loader struct {
	retriever fetch.Retriever
	cache     *cache.Fragments

	hits     atomic.Int64
	fetches  atomic.Int64
	failures atomic.Int64
}

// Stats summarizes loader activity for a session.
type Stats struct {
	Hits     int64
	Fetches  int64
	Failures int64
	Entries  int
	Bytes    uint64
}

// New returns a Loader with an empty cache.
func New(r fetch.Retriever) *Loader {
	return &Loader{retriever: r, cache: cache.New()}
}

// ErrorFragment is what Load returns when path could not be retrieved.
func ErrorFragment(path string) string {
	return fmt.Sprintf(`<div class="error-message">Failed to load content: %s</div>`, html.EscapeString(path))
}

// Load returns the content at path. A cached path is returned without I/O.
// Otherwise the path is retrieved; a 2xx body is cached and returned, while a
// transport error or other status yields ErrorFragment and leaves the cache
// untouched so a later call retries.
func (l *Loader) Load(ctx context.Context, path string) string {
	if entry, ok := l.cache.Read(path); ok {
		log.Debugf("loading from cache: %s", path)
		l.hits.Add(1)
		return entry.Data
	}

	log.Debugf("fetching: %s", path)
	l.fetches.Add(1)

	resp, err := l.retriever.Retrieve(ctx, path)
	if err != nil {
		l.failures.Add(1)
		log.WithError(err).Errorf("error loading content from %s", path)
		return ErrorFragment(path)
	}
	if !resp.OK() {
		l.failures.Add(1)
		log.Errorf("error loading content from %s: status %d", path, resp.Status)
		return ErrorFragment(path)
	}

	l.cache.Write(path, resp.Body)
	log.Debugf("content loaded successfully: %s", path)
	return resp.Body
}

// Cached reports whether path is in the cache.
func (l *Loader) Cached(path string) bool {
	_, ok := l.cache.Read(path)
	return ok
}

// Stats returns a snapshot of the loader counters and cache size.
func (l *Loader) Stats() Stats {
	return Stats{
		Hits:     l.hits.Load(),
		Fetches:  l.fetches.Load(),
		Failures: l.failures.Load(),
		Entries:  l.cache.Len(),
		Bytes:    l.cache.Size(),
	}
}

// Paths returns the cached paths, sorted.
func (l *Loader) Paths() []string {
	return l.cache.Keys()
}
