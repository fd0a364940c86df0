// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mdwidth/width.go
// Summary: Memoized visual-width computation for markdown cell text.

package mdwidth

import (
	"sync"

	"github.com/mattn/go-runewidth"
)

const (
	maxCacheEntries = 4096
	maxCacheFormats = 512
)

// Calculator computes the visual width of markdown fragments as a
// concealing display shows them, memoizing per exact input text. The
// cache is cleared in bulk once either bound is hit; a reset only costs
// recomputation, never correctness.
type Calculator struct {
	mu      sync.Mutex
	cache   map[string]int
	formats int
}

func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[string]int)}
}

// BeginFormat marks the start of a formatting operation. Long-lived
// calculators see many of these; the counter bounds cache lifetime for
// callers that never trip the entry bound.
func (c *Calculator) BeginFormat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats++
	if c.formats > maxCacheFormats {
		c.cache = make(map[string]int)
		c.formats = 0
	}
}

// Width returns the visual width of text after markdown concealment.
// Wide runes count 2 and combining runes 0, per go-runewidth.
func (c *Calculator) Width(text string) int {
	c.mu.Lock()
	if w, ok := c.cache[text]; ok {
		c.mu.Unlock()
		return w
	}
	c.mu.Unlock()

	w := runewidth.StringWidth(Strip(text))

	c.mu.Lock()
	if len(c.cache) >= maxCacheEntries {
		c.cache = make(map[string]int)
	}
	c.cache[text] = w
	c.mu.Unlock()
	return w
}
