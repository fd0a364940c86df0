// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termfmt/termfmt.go
// Summary: ANSI presentation of formatted documents for terminals.
// Borders render dim, header rows bold cyan, data columns tinted by
// inferred type, fence bodies syntax-highlighted.

package termfmt

import (
	"strings"

	"github.com/framegrace/texelmark/config"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiBold   = "\x1b[1m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
)

// Options controls terminal presentation.
type Options struct {
	Style string // chroma style name

	NumberThreshold   int
	DateTimeThreshold int
	PathThreshold     int
}

// DefaultOptions returns the built-in presentation settings.
func DefaultOptions() Options {
	return Options{
		Style:             defaultStyleName,
		NumberThreshold:   60,
		DateTimeThreshold: 60,
		PathThreshold:     40,
	}
}

// OptionsFromConfig reads the "termfmt" config section.
func OptionsFromConfig(cfg config.Config) Options {
	d := DefaultOptions()
	return Options{
		Style:             cfg.GetString("termfmt", "style", d.Style),
		NumberThreshold:   cfg.GetInt("termfmt", "number_threshold", d.NumberThreshold),
		DateTimeThreshold: cfg.GetInt("termfmt", "datetime_threshold", d.DateTimeThreshold),
		PathThreshold:     cfg.GetInt("termfmt", "path_threshold", d.PathThreshold),
	}
}

// Render decorates a formatted document with ANSI styling for terminal
// display. The text content is never altered, only wrapped in escapes.
func Render(doc string, opts Options) string {
	style := chromaStyle(opts.Style)
	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if marker, info := fenceInfo(line); marker != 0 {
			out = append(out, ansiDim+line+ansiReset)
			body := []string{}
			j := i + 1
			for ; j < len(lines); j++ {
				if m, _ := fenceInfo(lines[j]); m == marker {
					break
				}
				body = append(body, lines[j])
			}
			out = append(out, highlight(body, info, style)...)
			if j < len(lines) {
				out = append(out, ansiDim+lines[j]+ansiReset)
			}
			i = j
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "┌") {
			table := []string{line}
			for i+1 < len(lines) && isTableLine(lines[i+1]) {
				i++
				table = append(table, lines[i])
			}
			out = append(out, styleTable(table, opts)...)
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func fenceInfo(line string) (marker byte, info string) {
	t := strings.TrimLeft(line, " \t")
	if len(t) < 3 || (t[0] != '`' && t[0] != '~') {
		return 0, ""
	}
	m := t[0]
	n := 0
	for n < len(t) && t[n] == m {
		n++
	}
	if n < 3 {
		return 0, ""
	}
	return m, strings.TrimSpace(t[n:])
}

func isTableLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "├") ||
		strings.HasPrefix(t, "└") ||
		strings.HasPrefix(t, "│")
}

// styleTable dims borders, bolds the header row, and tints data columns
// by their classified type.
func styleTable(lines []string, opts Options) []string {
	var dataRows [][]string
	for _, line := range lines {
		if cells, ok := splitRow(line); ok {
			dataRows = append(dataRows, cells)
		}
	}

	var colTypes []columnType
	if len(dataRows) > 1 {
		cols := len(dataRows[0])
		colTypes = make([]columnType, cols)
		for ci := 0; ci < cols; ci++ {
			var values []string
			for _, row := range dataRows[1:] {
				if ci < len(row) {
					values = append(values, strings.TrimSpace(row[ci]))
				}
			}
			colTypes[ci] = classifyValues(values, opts)
		}
	}

	out := make([]string, 0, len(lines))
	rowIdx := 0
	for _, line := range lines {
		cells, ok := splitRow(line)
		if !ok {
			out = append(out, ansiDim+line+ansiReset)
			continue
		}
		out = append(out, styleRow(cells, colTypes, rowIdx == 0))
		rowIdx++
	}
	return out
}

// splitRow splits a rendered data row into its padded cell texts,
// preserving the margin spaces so styling never shifts alignment.
func splitRow(line string) ([]string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "│") || !strings.HasSuffix(t, "│") {
		return nil, false
	}
	parts := strings.Split(t, "│")
	if len(parts) < 3 {
		return nil, false
	}
	return parts[1 : len(parts)-1], true
}

func styleRow(cells []string, colTypes []columnType, header bool) string {
	var sb strings.Builder
	sb.WriteString(ansiDim + "│" + ansiReset)
	for i, cell := range cells {
		if header {
			sb.WriteString(ansiBold + ansiCyan + cell + ansiReset)
		} else if i < len(colTypes) {
			if code := colTypes[i].ansi(); code != "" {
				sb.WriteString(code + cell + ansiReset)
			} else {
				sb.WriteString(cell)
			}
		} else {
			sb.WriteString(cell)
		}
		sb.WriteString(ansiDim + "│" + ansiReset)
	}
	return sb.String()
}
