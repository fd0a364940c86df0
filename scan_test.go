// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texelmark

import "testing"

func TestIsFenceLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"```", true},
		{"```go", true},
		{"  ````", true},
		{"~~~", true},
		{"~~~~python", true},
		{"``", false},
		{"~~strike~~", false},
		{"text ```", false},
		{"", false},
	}
	for _, c := range cases {
		if got := isFenceLine(c.line); got != c.want {
			t.Errorf("isFenceLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestIsRowCandidate(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"| A | B |", true},
		{"│ A │ B │", true},
		{"  | a |  ", true},
		{"| --- | --- |", true},
		{"plain text", false},
		{"a | b", false},
		{"| no trailing pipe", false},
		{"||", false},
		{"", false},
	}
	for _, c := range cases {
		if got := isRowCandidate(c.line); got != c.want {
			t.Errorf("isRowCandidate(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestNormalizeRow(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"│ a │ b │", "| a | b |"},
		{"| a | | b |", "| a | b |"},
		{"| a | | | b |", "| a | b |"},
		{"  | a |  ", "| a |"},
	}
	for _, c := range cases {
		if got := normalizeRow(c.in); got != c.want {
			t.Errorf("normalizeRow(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderedTableDetection(t *testing.T) {
	if !isRenderedBorderLine("┌───┬───┐") {
		t.Error("top border not detected")
	}
	if !isRenderedBorderLine("  ├───┼───┤") {
		t.Error("indented mid border not detected")
	}
	if !isRenderedDataLine("│ a │ b │") {
		t.Error("rendered data line not detected")
	}
	if isRenderedDataLine("│ a | b │") {
		t.Error("mixed-pipe line wrongly treated as rendered")
	}
	if isRenderedBorderLine("| a |") {
		t.Error("candidate row wrongly treated as border")
	}
}
