// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scan.go
// Summary: Line classification and segment grouping for the formatter.

package texelmark

import (
	"regexp"
	"strings"
)

// Collapsed empty cell pairs: "| |" noise produced by some generators.
var reEmptyPipePair = regexp.MustCompile(`\|\s*\|`)

// isFenceLine reports whether a line opens or closes a code fence:
// optional leading whitespace, then three or more backticks or tildes,
// optionally followed by an info string.
func isFenceLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	if len(t) < 3 {
		return false
	}
	marker := t[0]
	if marker != '`' && marker != '~' {
		return false
	}
	n := 0
	for n < len(t) && t[n] == marker {
		n++
	}
	return n >= 3
}

// isRenderedBorderLine matches the top, middle, or bottom border of a
// table this formatter (or one like it) already rendered.
func isRenderedBorderLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "┌") ||
		strings.HasPrefix(t, "├") ||
		strings.HasPrefix(t, "└")
}

// isRenderedDataLine matches a data row inside an already-rendered
// table: bounded by │ with no raw ASCII pipes left over.
func isRenderedDataLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "│") &&
		strings.HasSuffix(t, "│") &&
		!strings.Contains(t, "|")
}

// normalizeRow maps box-drawing pipes back to ASCII, collapses empty
// cell pairs, and trims the line. Both candidate detection and cell
// splitting work on this form so they can never disagree.
func normalizeRow(line string) string {
	t := strings.ReplaceAll(line, "│", "|")
	for {
		collapsed := reEmptyPipePair.ReplaceAllString(t, "|")
		if collapsed == t {
			break
		}
		t = collapsed
	}
	return strings.TrimSpace(t)
}

// isRowCandidate reports whether a line looks like a markdown table row:
// normalized, it starts and ends with a pipe and splits into more than
// two fields (the two empty edge fields plus at least one cell).
func isRowCandidate(line string) bool {
	t := normalizeRow(line)
	if !strings.HasPrefix(t, "|") || !strings.HasSuffix(t, "|") {
		return false
	}
	return len(strings.Split(t, "|")) > 2
}
