// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/pager/pager.go
// Summary: Scrollable full-screen viewer for formatted documents.

package pager

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const tableGlyphs = "┌┐└┘├┤┬┴┼│─"

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by View. Passing
// nil restores the default. Used by tests with a simulation screen.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// View shows lines in a scrollable full-screen pager. Table border
// glyphs render dim so content stands out. Returns when the user quits
// with q, Esc, or Ctrl-C.
func View(title string, lines []string) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	p := &pager{screen: screen, title: title, lines: lines}
	p.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			p.clampTop()
			p.draw()
		case *tcell.EventKey:
			if p.handleKey(ev) {
				return nil
			}
			p.draw()
		}
	}
}

type pager struct {
	screen tcell.Screen
	title  string
	lines  []string
	top    int
}

// handleKey returns true when the pager should exit.
func (p *pager) handleKey(ev *tcell.EventKey) bool {
	_, h := p.screen.Size()
	page := h - 1
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.top--
	case tcell.KeyDown:
		p.top++
	case tcell.KeyPgUp:
		p.top -= page
	case tcell.KeyPgDn:
		p.top += page
	case tcell.KeyHome:
		p.top = 0
	case tcell.KeyEnd:
		p.top = len(p.lines)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			p.top--
		case 'j':
			p.top++
		case 'g':
			p.top = 0
		case 'G':
			p.top = len(p.lines)
		}
	}
	p.clampTop()
	return false
}

func (p *pager) clampTop() {
	_, h := p.screen.Size()
	max := len(p.lines) - (h - 1)
	if p.top > max {
		p.top = max
	}
	if p.top < 0 {
		p.top = 0
	}
}

func (p *pager) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()

	normal := tcell.StyleDefault
	dim := tcell.StyleDefault.Dim(true)

	for y := 0; y < h-1; y++ {
		idx := p.top + y
		if idx >= len(p.lines) {
			break
		}
		x := 0
		for _, r := range p.lines[idx] {
			if x >= w {
				break
			}
			style := normal
			if strings.ContainsRune(tableGlyphs, r) {
				style = dim
			}
			p.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	p.drawStatus(w, h)
	p.screen.Show()
}

func (p *pager) drawStatus(w, h int) {
	if h < 1 {
		return
	}
	pct := 100
	if len(p.lines) > 0 {
		last := p.top + (h - 1)
		if last > len(p.lines) {
			last = len(p.lines)
		}
		pct = last * 100 / len(p.lines)
	}
	status := fmt.Sprintf(" %s  %d%%  (q to quit) ", p.title, pct)
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		p.screen.SetContent(x, h-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		p.screen.SetContent(x, h-1, ' ', nil, style)
	}
}
