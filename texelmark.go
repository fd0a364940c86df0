// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelmark.go
// Summary: Engine entry points and the segment-driving format loop.

package texelmark

import (
	"fmt"
	"strings"

	"github.com/framegrace/texelmark/mdwidth"
	"github.com/framegrace/texelmark/transform"
)

const (
	invalidComment = "<!-- table not formatted: invalid structure -->"
	errorComment   = "<!-- table formatting error: %s -->"
)

// Engine re-renders markdown pipe tables found in free-form text as
// bordered box-drawing tables. Safe for concurrent use.
type Engine struct {
	widths *mdwidth.Calculator
}

func New() *Engine {
	return &Engine{widths: mdwidth.NewCalculator()}
}

// defaultEngine backs the package-level Format so the width cache
// persists across invocations within a process.
var defaultEngine = New()

// Format re-renders every valid markdown table in doc using the
// package-level engine.
func Format(doc string) string {
	return defaultEngine.Format(doc)
}

// Format transforms doc, leaving prose, fenced code, and already
// rendered tables untouched. It never panics or returns an error: an
// unexpected internal failure yields the original document with a
// trailing diagnostic comment.
func (e *Engine) Format(doc string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = doc + "\n" + fmt.Sprintf(errorComment, r)
		}
	}()
	formatted, err := e.format(doc)
	if err != nil {
		return doc + "\n" + fmt.Sprintf(errorComment, err)
	}
	return formatted
}

// Transform implements transform.Transformer.
func (e *Engine) Transform(text string) string {
	return e.Format(text)
}

func init() {
	transform.Register("tables", func(transform.Config) (transform.Transformer, error) {
		return New(), nil
	})
}

// format walks the document line by line, grouping segments and
// dispatching candidate table blocks.
func (e *Engine) format(doc string) (string, error) {
	e.widths.BeginFormat()

	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if isFenceLine(line) {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		// A table rendered by a previous pass is consumed verbatim,
		// which makes formatting idempotent.
		if isRenderedBorderLine(line) {
			out = append(out, line)
			for i+1 < len(lines) && (isRenderedBorderLine(lines[i+1]) || isRenderedDataLine(lines[i+1])) {
				i++
				out = append(out, lines[i])
			}
			continue
		}

		if isRowCandidate(line) {
			block := []string{line}
			for i+1 < len(lines) && isRowCandidate(lines[i+1]) {
				i++
				block = append(block, lines[i])
			}
			out = append(out, e.formatBlock(block)...)
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n"), nil
}

// formatBlock renders a candidate block, or passes it through with a
// diagnostic comment when its structure does not validate.
func (e *Engine) formatBlock(block []string) []string {
	parsed, ok := parseBlock(block)
	if !ok {
		return append(append([]string{}, block...), invalidComment)
	}
	return e.renderBlock(parsed)
}
