// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package pager

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestPager(t *testing.T, lines []string, w, h int) *pager {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return &pager{screen: screen, title: "test", lines: lines}
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestScrollClamping(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	p := newTestPager(t, lines, 40, 10)

	p.handleKey(key(tcell.KeyUp, 0))
	if p.top != 0 {
		t.Errorf("scrolled above top: %d", p.top)
	}

	p.handleKey(key(tcell.KeyRune, 'G'))
	if p.top != 30-9 {
		t.Errorf("G scrolled to %d, want %d", p.top, 30-9)
	}

	p.handleKey(key(tcell.KeyDown, 0))
	if p.top != 30-9 {
		t.Errorf("scrolled past bottom: %d", p.top)
	}

	p.handleKey(key(tcell.KeyRune, 'g'))
	if p.top != 0 {
		t.Errorf("g did not return to top: %d", p.top)
	}
}

func TestPageKeys(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	p := newTestPager(t, lines, 40, 11)

	p.handleKey(key(tcell.KeyPgDn, 0))
	if p.top != 10 {
		t.Errorf("PgDn: top = %d, want 10", p.top)
	}
	p.handleKey(key(tcell.KeyPgUp, 0))
	if p.top != 0 {
		t.Errorf("PgUp: top = %d, want 0", p.top)
	}
}

func TestQuitKeys(t *testing.T) {
	p := newTestPager(t, []string{"x"}, 20, 5)
	for _, ev := range []*tcell.EventKey{
		key(tcell.KeyRune, 'q'),
		key(tcell.KeyEscape, 0),
		key(tcell.KeyCtrlC, 0),
	} {
		if !p.handleKey(ev) {
			t.Errorf("key %v did not quit", ev.Key())
		}
	}
}
