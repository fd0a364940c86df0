// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texelmark

import (
	"strings"
	"testing"
)

func renderLines(t *testing.T, lines []string) []string {
	t.Helper()
	b, ok := parseBlock(lines)
	if !ok {
		t.Fatalf("block rejected: %v", lines)
	}
	out := New().renderBlock(b)
	for _, l := range out {
		t.Logf("%s", l)
	}
	return out
}

func TestRenderWidthFloor(t *testing.T) {
	out := renderLines(t, []string{
		"| A | B |",
		"| --- | --- |",
		"| 1 | 2 |",
	})
	// Columns narrower than 3 are padded to the floor: 3+2 margin dashes.
	if out[0] != "┌─────┬─────┐" {
		t.Errorf("top border = %q", out[0])
	}
	if out[1] != "│ A   │ B   │" {
		t.Errorf("header = %q", out[1])
	}
}

func TestRenderMidBorderBetweenRows(t *testing.T) {
	out := renderLines(t, []string{
		"| A | B |",
		"| --- | --- |",
		"| 1 | 2 |",
		"| 3 | 4 |",
	})
	if len(out) != 7 {
		t.Fatalf("got %d lines, want 7", len(out))
	}
	for i, prefix := range []string{"┌", "│", "├", "│", "├", "│", "└"} {
		if !strings.HasPrefix(out[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, out[i], prefix)
		}
	}
}

func TestRenderAlignment(t *testing.T) {
	out := renderLines(t, []string{
		"| left | right | mid |",
		"| :--- | ---: | :---: |",
		"| a | b | ab |",
	})
	if out[3] != "│ a    │     b │ ab  │" {
		t.Errorf("aligned row = %q", out[3])
	}
}

func TestRenderCenterOddRemainderRight(t *testing.T) {
	out := renderLines(t, []string{
		"| wide | x |",
		"| :---: | --- |",
		"| ab | y |",
	})
	// Column width 4, cell "ab" visual 2: pad 2 splits evenly.
	if out[3] != "│  ab  │ y   │" {
		t.Errorf("centered row = %q", out[3])
	}
	// Odd remainder goes right.
	if got := padCell("ab", 5, 2, alignCenter); got != " ab  " {
		t.Errorf("padCell center = %q, want %q", got, " ab  ")
	}
}

func TestRenderLastSeparatorWins(t *testing.T) {
	out := renderLines(t, []string{
		"| A | B |",
		"| :--- | :--- |",
		"| 1 | 2 |",
		"| ---: | ---: |",
		"| 30 | 40 |",
	})
	// Second separator overrides: right alignment, and both separator
	// rows are excluded from data.
	for _, l := range out {
		if strings.Contains(l, "---") {
			t.Errorf("separator leaked into output: %q", l)
		}
	}
	var dataRows []string
	for _, l := range out {
		if strings.HasPrefix(l, "│") {
			dataRows = append(dataRows, l)
		}
	}
	if len(dataRows) != 3 {
		t.Fatalf("got %d data rows, want 3", len(dataRows))
	}
	if dataRows[1] != "│   1 │   2 │" {
		t.Errorf("row = %q, want right-aligned", dataRows[1])
	}
}

func TestRenderWideRunes(t *testing.T) {
	out := renderLines(t, []string{
		"| Name | Char |",
		"| --- | --- |",
		"| emoji | 🙂 |",
	})
	// 🙂 is two columns wide, so a width-4 column pads it with two
	// spaces, not three.
	var row string
	for _, l := range out {
		if strings.Contains(l, "🙂") {
			row = l
		}
	}
	if row != "│ emoji │ 🙂   │" {
		t.Errorf("wide rune padding wrong: %q", row)
	}
}

func TestRenderConcealedWidthNeverTruncates(t *testing.T) {
	out := renderLines(t, []string{
		"| Style | Example |",
		"| --- | --- |",
		"| _Italic_ | text |",
	})
	// Raw "_Italic_" is 8 chars in a field sized for its concealed
	// width of 6; the cell overflows rather than being cut.
	if !strings.Contains(out[3], "_Italic_") {
		t.Errorf("cell truncated: %q", out[3])
	}
}

func TestSanitizeCell(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" plain ", "plain"},
		{"│leaked│", "leaked"},
		{"a─b", "ab"},
		{"┌┐└┘", ""},
	}
	for _, c := range cases {
		if got := sanitizeCell(c.in); got != c.want {
			t.Errorf("sanitizeCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestColumnCountInvariant(t *testing.T) {
	out := renderLines(t, []string{
		"| A | B | C |",
		"| --- | --- | --- |",
		"| 1 | 2 | 3 |",
		"| x | y | z |",
	})
	for _, l := range out {
		if !strings.HasPrefix(l, "│") {
			continue
		}
		if got := strings.Count(l, "│"); got != 4 {
			t.Errorf("row %q has %d column separators, want 4", l, got)
		}
	}
}
