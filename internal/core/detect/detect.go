// Package detect implements the pattern-based entity detector over the
// compiled rulepack. It is the structured source: offsets come straight
// from regex matches and carry high positional trust.
package detect

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"textguard/internal/core/rulepack"
	"textguard/internal/core/span"
)

// Version identifies the structured detector revision recorded on findings
const Version = 3

// Options controls a detection pass
type Options struct {
	// Kinds restricts detection to the listed entity kinds; empty means all
	Kinds []string
	// MinScore overrides the rulepack thresholds when > 0
	MinScore float64
}

// Detector runs entity patterns over raw text
type Detector struct {
	p *rulepack.Pack
}

// New constructs a Detector over a compiled pack
func New(p *rulepack.Pack) *Detector {
	return &Detector{p: p}
}

// Detect returns non-overlapping-per-kind structured spans with
// codepoint offsets into text. Matches below the per-kind threshold,
// shorter than the pack minimum, or sitting on generic filler terms
// are dropped.
func (d *Detector) Detect(text string, opts Options) []span.Record {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var wanted map[string]struct{}
	if len(opts.Kinds) > 0 {
		wanted = make(map[string]struct{}, len(opts.Kinds))
		for _, k := range opts.Kinds {
			wanted[k] = struct{}{}
		}
	}

	var out []span.Record
	for _, e := range d.p.Entities {
		if wanted != nil {
			if _, ok := wanted[e.Kind]; !ok {
				continue
			}
		}
		threshold := d.p.ThresholdFor(e.Kind)
		if opts.MinScore > 0 {
			threshold = opts.MinScore
		}
		if e.Score < threshold {
			continue
		}
		for _, m := range e.Pattern.FindAllStringIndex(text, -1) {
			frag := text[m[0]:m[1]]
			if utf8.RuneCountInString(frag) < d.p.MinEntityLen {
				continue
			}
			if !boundaryOK(text, m[0], m[1]) {
				continue
			}
			if d.p.Generic(frag) {
				continue
			}
			start := utf8.RuneCountInString(text[:m[0]])
			out = append(out, span.Record{
				Kind:   e.Kind,
				Source: span.TierStructured,
				Start:  start,
				End:    start + utf8.RuneCountInString(frag),
				Score:  e.Score,
			})
		}
	}
	return out
}

// boundaryOK rejects matches glued to surrounding alphanumerics, but
// only on the sides where the match itself starts or ends alphanumeric
func boundaryOK(text string, b0, b1 int) bool {
	first, _ := utf8.DecodeRuneInString(text[b0:])
	last, _ := utf8.DecodeLastRuneInString(text[:b1])

	if isWordy(first) && b0 > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:b0])
		if isWordy(prev) {
			return false
		}
	}
	if isWordy(last) && b1 < len(text) {
		next, _ := utf8.DecodeRuneInString(text[b1:])
		if isWordy(next) {
			return false
		}
	}
	return true
}

func isWordy(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
