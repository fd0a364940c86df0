// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transform/transform.go
// Summary: Registry and pipeline for text transformers applied to
// generated output before display.

package transform

import (
	"fmt"
	"log"
	"sync"

	"github.com/framegrace/texelmark/config"
)

// Transformer rewrites a completed block of generated text into its
// display form.
type Transformer interface {
	Transform(text string) string
}

// Config carries per-instance options from the pipeline configuration.
type Config map[string]interface{}

// Factory builds a transformer instance from its options.
type Factory func(cfg Config) (Transformer, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a transformer available under id. It panics on a
// duplicate id, which indicates a programmer error at init time.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("transform: duplicate transformer id %q", id))
	}
	registry[id] = factory
}

// Lookup returns the factory registered under id.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// Pipeline applies transformers in order.
type Pipeline struct {
	transformers []Transformer
}

func NewPipeline(ts ...Transformer) *Pipeline {
	return &Pipeline{transformers: ts}
}

// Transform runs text through every stage. A nil pipeline is a no-op.
func (p *Pipeline) Transform(text string) string {
	if p == nil {
		return text
	}
	for _, t := range p.transformers {
		text = t.Transform(text)
	}
	return text
}

func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.transformers)
}

// BuildPipeline assembles the pipeline described by the "transformers"
// config section. Unknown ids and failed factories are logged and
// skipped so one bad entry cannot take down display formatting.
func BuildPipeline(cfg config.Config) *Pipeline {
	if !cfg.GetBool("transformers", "enabled", true) {
		return NewPipeline()
	}

	entries := pipelineEntries(cfg)
	var stages []Transformer
	for _, entry := range entries {
		id, _ := entry["id"].(string)
		if id == "" {
			continue
		}
		if enabled, ok := entry["enabled"].(bool); ok && !enabled {
			continue
		}
		factory, ok := Lookup(id)
		if !ok {
			log.Printf("[TRANSFORMER] unknown transformer %q, skipping", id)
			continue
		}
		opts, _ := entry["opts"].(map[string]interface{})
		t, err := factory(Config(opts))
		if err != nil {
			log.Printf("[TRANSFORMER] failed to build %q: %v", id, err)
			continue
		}
		stages = append(stages, t)
	}
	return NewPipeline(stages...)
}

func pipelineEntries(cfg config.Config) []map[string]interface{} {
	section := cfg.Section("transformers")
	if section == nil {
		return nil
	}
	raw, ok := section["pipeline"].([]interface{})
	if !ok {
		return nil
	}
	entries := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			entries = append(entries, m)
		}
	}
	return entries
}
