// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package router maps section identifiers to fragments and swaps them into
// the main content region of a page. It also runs page initialization: on
// the entry page the shared header and footer are loaded into their
// containers and the section named by the hash is shown; on nested pages the
// header and footer elements are replaced, with the header's section links
// pointed back at the entry page.
//
// Concurrent section requests are allowed. Every request takes a generation
// number and only the newest one commits its render and history entry.
package router
