// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMainRegion is returned when the page has no main content region.
	ErrNoMainRegion = errors.New("main content region not found")
	// ErrSuperseded is returned by a request that a newer request overtook
	// before it could commit.
	ErrSuperseded = errors.New("superseded by a newer section request")
)

// SectionError reports a section that could not be displayed.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}
