// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/apex/log"
)

// expandArgSet replaces the first @name argument with the arguments stored
// under "<command>.<name>". Without an @name, the "defaults" set is inserted
// right after the command. Each stored entry may hold several
// whitespace-separated arguments. An unknown set expands to nothing.
func expandArgSet(args []string, lookup func(key string) []string) []string {
	if len(args) < 2 {
		return args
	}

	set, at := "defaults", 2
	rest := args[2:]
	for i, a := range rest {
		if strings.HasPrefix(a, "@") {
			set, at = a[1:], 2+i
			rest = append(append([]string{}, rest[:i]...), rest[i+1:]...)
			break
		}
	}

	var inserted []string
	for _, entry := range lookup(args[1] + "." + set) {
		inserted = append(inserted, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(inserted))
	out = append(out, args[:2]...)
	out = append(out, rest[:at-2]...)
	out = append(out, inserted...)
	out = append(out, rest[at-2:]...)

	log.Debugf("argument set %s: %v", set, out)
	return out
}
