// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: validate.go
// Summary: Structural validation of candidate table blocks.

package texelmark

import (
	"regexp"
	"strings"
)

var (
	reSeparatorCell = regexp.MustCompile(`^\s*:?-+:?\s*$`)
	reSeparatorEnds = regexp.MustCompile(`^\s*(:?)-+(:?)\s*$`)
)

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// tableBlock is a validated candidate: normalized rows of equal cell
// count plus the indices of every separator-shaped row.
type tableBlock struct {
	rows       [][]string
	separators []int
}

// splitCells splits a candidate line into trimmed cell values.
func splitCells(line string) []string {
	t := normalizeRow(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	cells := strings.Split(t, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !reSeparatorCell.MatchString(c) {
			return false
		}
	}
	return true
}

// parseBlock validates a candidate block. It rejects blocks with fewer
// than two lines, rows of unequal cell count, or no separator row; on
// rejection the caller passes the original lines through untouched.
func parseBlock(lines []string) (*tableBlock, bool) {
	if len(lines) < 2 {
		return nil, false
	}
	b := &tableBlock{rows: make([][]string, 0, len(lines))}
	for i, line := range lines {
		cells := splitCells(line)
		if i > 0 && len(cells) != len(b.rows[0]) {
			return nil, false
		}
		if isSeparatorRow(cells) {
			b.separators = append(b.separators, i)
		}
		b.rows = append(b.rows, cells)
	}
	if len(b.separators) == 0 {
		return nil, false
	}
	return b, true
}

// parseAlignment reads a separator cell's colons: ":-" left, "-:" right,
// ":-:" center, bare dashes left.
func parseAlignment(cell string) alignment {
	m := reSeparatorEnds.FindStringSubmatch(cell)
	if m == nil {
		return alignLeft
	}
	switch {
	case m[1] == ":" && m[2] == ":":
		return alignCenter
	case m[2] == ":":
		return alignRight
	default:
		return alignLeft
	}
}
