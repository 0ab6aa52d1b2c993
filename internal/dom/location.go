// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dom

import "strings"

// Location is the page address: the path and the fragment without its '#'.
type Location struct {
	Path string
	Hash string
}

// ParseLocation splits "path#hash". A missing path becomes "/".
func ParseLocation(s string) Location {
	p, hash, _ := strings.Cut(s, "#")
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return Location{Path: p, Hash: hash}
}

// String joins the location back into "path#hash".
func (l Location) String() string {
	if l.Hash == "" {
		return l.Path
	}
	return l.Path + "#" + l.Hash
}
