// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragments(t *testing.T) {
	f := New()

	_, ok := f.Read("SECTIONS/HOME/home.html")
	assert.False(t, ok)

	f.Write("SECTIONS/HOME/home.html", "<p>home</p>")
	f.Write("COMPONENTS/header.html", "<header></header>")

	entry, ok := f.Read("SECTIONS/HOME/home.html")
	assert.True(t, ok)
	assert.Equal(t, "SECTIONS/HOME/home.html", entry.Key)
	assert.Equal(t, "<p>home</p>", entry.Data)

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, uint64(len("<p>home</p>")+len("<header></header>")), f.Size())
	assert.Equal(t, []string{"COMPONENTS/header.html", "SECTIONS/HOME/home.html"}, f.Keys())
}

func TestFragments_EmptyValueIsCached(t *testing.T) {
	f := New()
	f.Write("empty.html", "")

	entry, ok := f.Read("empty.html")
	assert.True(t, ok)
	assert.Equal(t, "", entry.Data)
}

func TestFragments_Concurrent(t *testing.T) {
	f := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%10))
			f.Write(key, key)
			_, _ = f.Read(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, f.Len())
}
