// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package fencelang

import (
	"strings"
	"testing"
)

func TestInferGo(t *testing.T) {
	lines := []string{
		"package main",
		`import "fmt"`,
		"func main() {",
		`    fmt.Println("hello")`,
		"}",
	}
	r := Infer(lines)
	if r.Name != "go" {
		t.Errorf("expected 'go', got %q", r.Name)
	}
	if r.Method != "heuristic" {
		t.Errorf("expected method 'heuristic', got %q", r.Method)
	}
}

func TestInferJSON(t *testing.T) {
	lines := []string{
		"{",
		`  "name": "texelmark",`,
		`  "ok": true`,
		"}",
	}
	r := Infer(lines)
	if r.Name != "json" {
		t.Errorf("expected 'json', got %q", r.Name)
	}
	if r.Method != "heuristic" {
		t.Errorf("expected method 'heuristic', got %q", r.Method)
	}
}

func TestInferShebang(t *testing.T) {
	lines := []string{
		"#!/usr/bin/env python3",
		"import os",
		"print('hello')",
	}
	r := Infer(lines)
	if r.Name != "python" {
		t.Errorf("expected 'python', got %q", r.Name)
	}
	if r.Method != "shebang" {
		t.Errorf("expected method 'shebang', got %q", r.Method)
	}
}

func TestInferPythonClassifier(t *testing.T) {
	// go-enry's Bayesian classifier detects Python from content
	// (unlike Chroma's lexers.Analyse which requires filename matching).
	lines := []string{
		"import os",
		"class MyApp:",
		"    def run(self):",
		"        pass",
	}
	r := Infer(lines)
	if r.Name != "python" {
		t.Errorf("expected 'python', got %q", r.Name)
	}
	if r.Method != "classifier" {
		t.Errorf("expected method 'classifier', got %q", r.Method)
	}
}

func TestInferRustClassifier(t *testing.T) {
	lines := []string{
		"use std::io;",
		"fn main() {",
		`    let mut input = String::new();`,
		`    println!("{}", input);`,
		"}",
	}
	r := Infer(lines)
	if r.Name != "rust" {
		t.Errorf("expected 'rust', got %q", r.Name)
	}
	if r.Method != "classifier" {
		t.Errorf("expected method 'classifier', got %q", r.Method)
	}
}

func TestLabelerRewritesBareFence(t *testing.T) {
	doc := strings.Join([]string{
		"before",
		"```",
		"package main",
		`import "fmt"`,
		"func main() {}",
		"```",
		"after",
	}, "\n")

	got := (&Labeler{}).Transform(doc)
	if !strings.Contains(got, "```go\n") {
		t.Errorf("fence not labeled:\n%s", got)
	}
	if !strings.Contains(got, "func main() {}") {
		t.Errorf("fence body altered:\n%s", got)
	}
}

func TestLabelerLeavesLabeledFence(t *testing.T) {
	doc := "```python\nimport os\n```"
	if got := (&Labeler{}).Transform(doc); got != doc {
		t.Errorf("labeled fence changed: %q", got)
	}
}

func TestLabelerLeavesUnterminatedFence(t *testing.T) {
	doc := "```\npackage main\nfunc main() {}"
	if got := (&Labeler{}).Transform(doc); got != doc {
		t.Errorf("unterminated fence changed: %q", got)
	}
}
