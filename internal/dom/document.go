// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Document is a parsed page and its location.
type Document struct {
	mu       sync.RWMutex
	root     *html.Node
	location Location
}

// Parse parses a full page.
func Parse(markup string, loc Location) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root, location: loc}, nil
}

// Location returns the current location.
func (d *Document) Location() Location {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.location
}

// SetHash changes the location's hash, as pushState or a hash change would.
func (d *Document) SetHash(hash string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.location.Hash = strings.TrimPrefix(hash, "#")
}

// ElementByID returns the first element with the id, or nil.
func (d *Document) ElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := find(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	return d.wrap(n)
}

// QueryTag returns the first element with the tag name, or nil.
func (d *Document) QueryTag(tag string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tag = strings.ToLower(tag)
	n := find(d.root, func(n *html.Node) bool { return n.Data == tag })
	return d.wrap(n)
}

// QueryClass returns every element carrying the class, in document order.
func (d *Document) QueryClass(class string) []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.collect(func(n *html.Node) bool { return hasClass(n, class) })
}

// QueryAttr returns every element that has the attribute, in document order.
func (d *Document) QueryAttr(key string) []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.collect(func(n *html.Node) bool {
		_, ok := attr(n, key)
		return ok
	})
}

// Render serializes the whole document.
func (d *Document) Render() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) collect(match func(*html.Node) bool) []*Element {
	var result []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			result = append(result, d.wrap(n))
		}
		return true
	})
	return result
}

// walk visits n and its descendants depth first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func find(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
