// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the in-memory fragment cache used by the loader.
// Entries live for the whole page session and are never evicted.
package cache
