// Package rulepack loads and compiles detection rules from the embedded rules.json.
// It prepares entity regexes, the profanity lemma set, and the placeholder
// and threshold maps detectors and services resolve against
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

//go:embed rules.json
var embedded []byte

// DefaultKey is the fallback entry in the placeholder and threshold maps
const DefaultKey = "DEFAULT"

type rawEntity struct {
	Kind    string  `json:"kind"`
	Pattern string  `json:"pattern"`
	Score   float64 `json:"score"`
}

type rawProfanity struct {
	Lemmas   []string `json:"lemmas"`
	Stoplist []string `json:"stoplist"`
}

type rawPack struct {
	Version      int                `json:"version"`
	Meta         map[string]any     `json:"meta"`
	Entities     []rawEntity        `json:"entities"`
	Profanity    rawProfanity       `json:"profanity"`
	Placeholders map[string]string  `json:"placeholders"`
	Thresholds   map[string]float64 `json:"thresholds"`
	GenericTerms []string           `json:"generic_terms"`
	MinEntityLen int                `json:"min_entity_len"`
}

// Entity is one compiled pattern rule
type Entity struct {
	Kind    string
	Score   float64
	Pattern *regexp.Regexp
}

// Pack is the compiled rule pack
type Pack struct {
	Version int
	Meta    map[string]any

	// Compiled entity patterns, in file order
	Entities []Entity

	// Profanity lemma set and the stoplist of innocent containing tokens,
	// both lowercased
	Lemmas  map[string]struct{}
	Stopset map[string]struct{}

	// Per-kind maps, resolved through the DEFAULT entry
	Placeholders map[string]string
	Thresholds   map[string]float64

	// Generic filler terms a semantic tagger tends to misflag
	Genericset map[string]struct{}

	// Minimum codepoint length for an accepted entity
	MinEntityLen int
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// Parse compiles a pack from raw json bytes
func Parse(raw []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}

	p := &Pack{
		Version:      rp.Version,
		Meta:         rp.Meta,
		Lemmas:       make(map[string]struct{}, len(rp.Profanity.Lemmas)),
		Stopset:      make(map[string]struct{}, len(rp.Profanity.Stoplist)),
		Placeholders: rp.Placeholders,
		Thresholds:   rp.Thresholds,
		Genericset:   make(map[string]struct{}, len(rp.GenericTerms)),
		MinEntityLen: rp.MinEntityLen,
	}
	if p.Placeholders == nil {
		p.Placeholders = map[string]string{}
	}
	if p.Thresholds == nil {
		p.Thresholds = map[string]float64{}
	}
	if _, ok := p.Placeholders[DefaultKey]; !ok {
		return nil, fmt.Errorf("rulepack: placeholders missing %s entry", DefaultKey)
	}
	if _, ok := p.Thresholds[DefaultKey]; !ok {
		return nil, fmt.Errorf("rulepack: thresholds missing %s entry", DefaultKey)
	}

	for _, e := range rp.Entities {
		if e.Kind == "" || e.Pattern == "" {
			return nil, fmt.Errorf("rulepack: entity with empty kind or pattern")
		}
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile %s: %w", e.Kind, err)
		}
		p.Entities = append(p.Entities, Entity{Kind: e.Kind, Score: e.Score, Pattern: re})
	}

	for _, l := range rp.Profanity.Lemmas {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			p.Lemmas[l] = struct{}{}
		}
	}
	for _, s := range rp.Profanity.Stoplist {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			p.Stopset[s] = struct{}{}
		}
	}
	for _, g := range rp.GenericTerms {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			p.Genericset[g] = struct{}{}
		}
	}

	return p, nil
}

// PlaceholderFor resolves the replacement token for a kind, falling
// back to the DEFAULT entry
func (p *Pack) PlaceholderFor(kind string) string {
	if v, ok := p.Placeholders[kind]; ok {
		return v
	}
	return p.Placeholders[DefaultKey]
}

// ThresholdFor resolves the confidence threshold for a kind, falling
// back to the DEFAULT entry
func (p *Pack) ThresholdFor(kind string) float64 {
	if v, ok := p.Thresholds[kind]; ok {
		return v
	}
	return p.Thresholds[DefaultKey]
}

// Generic reports whether term (any case) is a generic filler term
func (p *Pack) Generic(term string) bool {
	_, ok := p.Genericset[strings.ToLower(strings.TrimSpace(term))]
	return ok
}
