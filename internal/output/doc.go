// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output turns command rows into text tables, JSON or YAML after
// applying the --columns, --filter and --sort specs.
package output
