// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render.go
// Summary: Bordered, alignment-aware emission of validated table blocks.

package texelmark

import "strings"

const minColumnWidth = 3

// Border glyphs stripped from cell text before rendering; a cell that
// leaked these from a previous rendering pass must not double them up.
const borderGlyphs = "┌┐└┘├┤┬┴┼│─╭╮╰╯"

func sanitizeCell(cell string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(borderGlyphs, r) {
			return -1
		}
		return r
	}, cell)
	return strings.TrimSpace(cleaned)
}

// renderBlock emits a validated block as a box-drawing table. Alignment
// comes from the right-most separator row; widths are the max concealed
// visual width over data rows, floored at minColumnWidth.
func (e *Engine) renderBlock(b *tableBlock) []string {
	cols := len(b.rows[0])

	aligns := make([]alignment, cols)
	last := b.separators[len(b.separators)-1]
	for i, cell := range b.rows[last] {
		aligns[i] = parseAlignment(cell)
	}

	isSep := make(map[int]bool, len(b.separators))
	for _, i := range b.separators {
		isSep[i] = true
	}

	var data [][]string
	for i, row := range b.rows {
		if isSep[i] {
			continue
		}
		cleaned := make([]string, cols)
		for j, cell := range row {
			cleaned[j] = sanitizeCell(cell)
		}
		data = append(data, cleaned)
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, row := range data {
		for j, cell := range row {
			if w := e.widths.Width(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	out := make([]string, 0, 2*len(data)+1)
	out = append(out, makeBorder(widths, "┌", "┬", "┐"))
	for i, row := range data {
		if i > 0 {
			out = append(out, makeBorder(widths, "├", "┼", "┤"))
		}
		out = append(out, e.makeDataRow(row, widths, aligns))
	}
	out = append(out, makeBorder(widths, "└", "┴", "┘"))
	return out
}

func makeBorder(widths []int, left, mid, right string) string {
	var sb strings.Builder
	sb.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(mid)
		}
		sb.WriteString(strings.Repeat("─", w+2))
	}
	sb.WriteString(right)
	return sb.String()
}

func (e *Engine) makeDataRow(row []string, widths []int, aligns []alignment) string {
	var sb strings.Builder
	sb.WriteString("│")
	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(padCell(cell, widths[i], e.widths.Width(cell), aligns[i]))
		sb.WriteString(" │")
	}
	return sb.String()
}

// padCell pads by visual width, never truncates: a cell wider than its
// field (possible when markdown syntax outweighs concealed width) is
// emitted as-is.
func padCell(cell string, width, visual int, al alignment) string {
	pad := width - visual
	if pad <= 0 {
		return cell
	}
	switch al {
	case alignRight:
		return strings.Repeat(" ", pad) + cell
	case alignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}
