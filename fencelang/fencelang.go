// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fencelang/fencelang.go
// Summary: Language inference for code fences, plus a transformer that
// labels bare fence openers with the inferred language.

package fencelang

import (
	"encoding/json"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelmark/transform"
)

func init() {
	transform.Register("fencelang", func(transform.Config) (transform.Transformer, error) {
		return &Labeler{}, nil
	})
}

// Result is an inference outcome: a lowercase language name (empty when
// nothing was confidently detected) and the method that produced it.
type Result struct {
	Name   string
	Method string
}

const (
	methodHeuristic  = "heuristic"
	methodShebang    = "shebang"
	methodClassifier = "classifier"
)

// Infer guesses the language of a code block. Cheap structural
// heuristics run first, then shebang lookup, then go-enry's Bayesian
// classifier. Chroma's lexers.Analyse is a poor fit here because it
// keys mostly off filenames, which fences never have.
func Infer(lines []string) Result {
	if len(lines) == 0 {
		return Result{}
	}
	content := strings.Join(lines, "\n")

	if looksLikeGo(lines) {
		return Result{Name: "go", Method: methodHeuristic}
	}
	if looksLikeJSON(content) {
		return Result{Name: "json", Method: methodHeuristic}
	}

	if strings.HasPrefix(lines[0], "#!") {
		if lang, ok := enry.GetLanguageByShebang([]byte(content)); ok {
			return Result{Name: strings.ToLower(lang), Method: methodShebang}
		}
	}

	if lang, ok := enry.GetLanguageByClassifier([]byte(content), classifierCandidates); ok {
		return Result{Name: strings.ToLower(lang), Method: methodClassifier}
	}
	return Result{}
}

// Languages the Bayesian classifier chooses between. enry returns
// nothing for an empty candidate list, so the set must be explicit;
// these cover the languages commonly seen in fenced blocks.
var classifierCandidates = []string{
	"C",
	"C++",
	"C#",
	"CSS",
	"Elixir",
	"Go",
	"HTML",
	"Haskell",
	"Java",
	"JavaScript",
	"Kotlin",
	"Lua",
	"Markdown",
	"PHP",
	"Perl",
	"Python",
	"R",
	"Ruby",
	"Rust",
	"SQL",
	"Scala",
	"Shell",
	"Swift",
	"TOML",
	"TypeScript",
	"XML",
	"YAML",
}

func looksLikeGo(lines []string) bool {
	hasPackage := false
	hasBody := false
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if strings.HasPrefix(t, "package ") {
			hasPackage = true
		}
		if strings.HasPrefix(t, "func ") || strings.HasPrefix(t, "import ") || strings.HasPrefix(t, "import(") {
			hasBody = true
		}
	}
	return hasPackage && hasBody
}

func looksLikeJSON(content string) bool {
	t := strings.TrimSpace(content)
	if len(t) < 2 {
		return false
	}
	first, last := t[0], t[len(t)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	var tmp any
	return json.Unmarshal([]byte(t), &tmp) == nil
}

// Labeler rewrites bare ``` fence openers to ```lang when the fence
// body infers confidently, so downstream highlighters get a lexer name.
type Labeler struct{}

// Transform labels unlabeled fences. Labeled and unterminated fences
// are left alone.
func (l *Labeler) Transform(text string) string {
	lines := strings.Split(text, "\n")
	changed := false

	for i := 0; i < len(lines); i++ {
		marker, bare := fenceOpener(lines[i])
		if marker == 0 {
			continue
		}
		end := closingFence(lines, i+1, marker)
		if end < 0 {
			break
		}
		if bare && end > i+1 {
			r := Infer(lines[i+1 : end])
			if r.Name != "" {
				lines[i] = lines[i] + r.Name
				changed = true
			}
		}
		i = end
	}

	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}

// fenceOpener returns the fence marker byte (` or ~) when the line
// opens a fence, and whether the opener carries no info string.
func fenceOpener(line string) (marker byte, bare bool) {
	t := strings.TrimLeft(line, " \t")
	if len(t) < 3 || (t[0] != '`' && t[0] != '~') {
		return 0, false
	}
	m := t[0]
	n := 0
	for n < len(t) && t[n] == m {
		n++
	}
	if n < 3 {
		return 0, false
	}
	return m, strings.TrimSpace(t[n:]) == ""
}

func closingFence(lines []string, from int, marker byte) int {
	for i := from; i < len(lines); i++ {
		m, bare := fenceOpener(lines[i])
		if m == marker && bare {
			return i
		}
	}
	return -1
}
