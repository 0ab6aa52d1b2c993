// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

type sortKey struct {
	name          string
	descending    bool
	caseSensitive bool
}

// parseSortSpec turns "-count,!name" into keys. A leading '-' sorts
// descending, a leading '!' compares strings case sensitively.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		var k sortKey
		for len(part) > 0 && (part[0] == '-' || part[0] == '!') {
			if part[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			part = part[1:]
		}
		if part == "" {
			continue
		}
		k.name = part
		keys = append(keys, k)
	}
	return keys
}

// SortDataset sorts the rows in place by the spec's keys, in order. Numbers
// compare numerically, everything else as text. The sort is stable and an
// empty spec leaves the order alone.
func SortDataset(rows []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.name], rows[j][k.name], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b interface{}, caseSensitive bool) int {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}

	sa, sb := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}
