// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dom is the document boundary: a parsed page shell that can be
// queried by id, tag, class or attribute and mutated by replacing an
// element's inner markup or the element itself. It also carries the page's
// location (path and hash).
//
// A Document is safe for concurrent use. Elements are handles into the tree;
// an Element whose node has been replaced keeps working but is no longer
// Attached.
package dom
