// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package rewrite adjusts links inside fragments loaded on nested pages.
package rewrite

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HashLinks rewrites every anchor or image-map area whose href is a pure hash reference
// ("#section") to point at entry plus that hash, e.g. "../index.html#section".
// Other hrefs, and a bare "#", are left alone. It returns the rewritten
// markup and the number of links changed.
func HashLinks(markup string, entry string) (string, int, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse fragment: %w", err)
	}

	changed := 0
	for _, n := range nodes {
		changed += rewriteNode(n, entry)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", 0, fmt.Errorf("failed to render fragment: %w", err)
		}
	}
	return buf.String(), changed, nil
}

func rewriteNode(n *html.Node, entry string) int {
	changed := 0
	if isLink(n) {
		for i, a := range n.Attr {
			if a.Namespace != "" || a.Key != "href" {
				continue
			}
			if IsHashLink(a.Val) {
				n.Attr[i].Val = entry + a.Val
				changed++
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		changed += rewriteNode(c, entry)
	}
	return changed
}

func isLink(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.A || n.DataAtom == atom.Area)
}

// IsHashLink reports whether href is "#" followed by at least one character.
func IsHashLink(href string) bool {
	return len(href) > 1 && href[0] == '#'
}

// HashTargets returns the section ids named by the pure hash links of a
// fragment, in document order without duplicates.
func HashTargets(markup string) ([]string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}

	seen := map[string]bool{}
	var ids []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if isLink(n) {
			for _, a := range n.Attr {
				if a.Namespace == "" && a.Key == "href" && IsHashLink(a.Val) {
					id := a.Val[1:]
					if !seen[id] {
						seen[id] = true
						ids = append(ids, id)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return ids, nil
}
