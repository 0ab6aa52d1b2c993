// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocation struct {
	hashes []string
}

func (f *fakeLocation) SetHash(hash string) {
	f.hashes = append(f.hashes, hash)
}

func TestMemory_PushState(t *testing.T) {
	loc := &fakeLocation{}
	m := New(loc)

	fired := 0
	m.OnHashChange("router", func(context.Context, string) { fired++ })

	assert.Nil(t, m.Peek())

	m.PushState(nil, "", "#home")
	m.PushState(nil, "", "#about")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []Entry{{URL: "#home"}, {URL: "#about"}}, m.Entries())
	require.NotNil(t, m.Peek())
	assert.Equal(t, "#about", m.Peek().URL)
	assert.Equal(t, []string{"home", "about"}, loc.hashes)
	assert.Equal(t, 0, fired, "pushState must not fire hash change")
}

func TestMemory_Navigate(t *testing.T) {
	loc := &fakeLocation{}
	m := New(loc)

	var calls []string
	m.OnHashChange("b", func(_ context.Context, hash string) { calls = append(calls, "b:"+hash) })
	m.OnHashChange("a", func(_ context.Context, hash string) { calls = append(calls, "a:"+hash) })

	m.Navigate(context.Background(), "#students")

	assert.Equal(t, []string{"a:students", "b:students"}, calls)
	assert.Equal(t, []string{"students"}, loc.hashes)
	assert.Equal(t, "#students", m.Peek().URL)
}

func TestMemory_ListenersKeyed(t *testing.T) {
	m := New(nil)

	var calls []string
	m.OnHashChange("router", func(_ context.Context, hash string) { calls = append(calls, "old") })
	m.OnHashChange("router", func(_ context.Context, hash string) { calls = append(calls, "new") })

	m.Navigate(context.Background(), "x")
	assert.Equal(t, []string{"new"}, calls)

	m.RemoveHashChange("router")
	m.Navigate(context.Background(), "y")
	assert.Equal(t, []string{"new"}, calls)
	assert.Equal(t, 2, m.Len())
}

func TestMemory_EntriesIsCopy(t *testing.T) {
	m := New(nil)
	m.PushState(nil, "", "#home")

	entries := m.Entries()
	entries[0].URL = "#changed"
	assert.Equal(t, "#home", m.Entries()[0].URL)
}
