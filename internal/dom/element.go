// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Element is a handle to an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Tag returns the lower case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute, if any.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return attr(e.node, key)
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.Attr(key)
	return ok
}

// SetAttr sets or adds the attribute.
func (e *Element) SetAttr(key string, val string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, key, val)
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return hasClass(e.node, class)
}

// AddClass adds class to the class list if it is missing.
func (e *Element) AddClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if hasClass(e.node, class) {
		return
	}
	v, _ := attr(e.node, "class")
	setAttr(e.node, "class", strings.TrimSpace(v+" "+class))
}

// RemoveClass drops every occurrence of class from the class list.
func (e *Element) RemoveClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, ok := attr(e.node, "class")
	if !ok {
		return
	}
	kept := make([]string, 0)
	for _, c := range strings.Fields(v) {
		if c != class {
			kept = append(kept, c)
		}
	}
	setAttr(e.node, "class", strings.Join(kept, " "))
}

// Display returns the inline display style, or "".
func (e *Element) Display() string {
	style, _ := e.Attr("style")
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "display") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// SetDisplay sets the inline display style, keeping other declarations.
func (e *Element) SetDisplay(value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	style, _ := attr(e.node, "style")
	var decls []string
	found := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), "display") {
			if !found {
				decls = append(decls, "display: "+value)
				found = true
			}
			continue
		}
		decls = append(decls, decl)
	}
	if !found {
		decls = append(decls, "display: "+value)
	}
	setAttr(e.node, "style", strings.Join(decls, "; "))
}

// Attached reports whether the element is still part of its document.
func (e *Element) Attached() bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() (string, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", e.node.Data, err)
		}
	}
	return buf.String(), nil
}

// SetInnerHTML replaces the element's children with the parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("failed to parse fragment for %s: %w", e.node.Data, err)
	}

	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// ReplaceWith swaps the whole element for the parsed markup. The Element is
// detached afterwards.
func (e *Element) ReplaceWith(markup string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	parent := e.node.Parent
	if parent == nil {
		return fmt.Errorf("cannot replace detached %s element", e.node.Data)
	}

	ctxNode := parent
	if ctxNode.Type != html.ElementNode {
		ctxNode = nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctxNode)
	if err != nil {
		return fmt.Errorf("failed to parse replacement for %s: %w", e.node.Data, err)
	}

	for _, n := range nodes {
		parent.InsertBefore(n, e.node)
	}
	parent.RemoveChild(e.node)
	return nil
}

// Text returns the readable text of the element: whitespace collapsed inside
// text runs, block elements separated by newlines, scripts and styles skipped.
func (e *Element) Text() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var sb strings.Builder
	writeText(&sb, e.node)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "br": true, "section": true,
	"article": true, "header": true, "footer": true, "nav": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "main": true,
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}

	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteString("\n")
	}
}

// collapseSpace folds whitespace runs, including newlines, into one space.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		out = " " + out
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		out += " "
	}
	return out
}

func setAttr(n *html.Node, key string, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
