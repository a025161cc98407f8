// Package span holds the shared annotation model and the overlap,
// rewrite, and diff primitives every detector output flows through.
//
// All offsets are half open codepoint (rune) ranges into the original
// input text, never into any intermediate rewritten text.
package span

import (
	perr "textguard/internal/platform/errors"
)

// Tier ranks a detector family for overlap precedence
type Tier uint8

const (
	// TierNone marks spans whose origin tag has been stripped after merge
	TierNone Tier = iota
	// TierSemantic marks spans from learned models, lower positional trust
	TierSemantic
	// TierStructured marks spans from pattern matchers, high positional trust
	TierStructured
)

// String returns the tier label for logs
func (t Tier) String() string {
	switch t {
	case TierStructured:
		return "structured"
	case TierSemantic:
		return "semantic"
	default:
		return "none"
	}
}

// Record is the unit of annotation all detectors normalize into
type Record struct {
	// Kind is the category tag chosen by the detector, eg "EMAIL_ADDRESS" or "profanity"
	Kind string
	// Source ranks the producing detector family for precedence only
	Source Tier
	// Start and End are half open codepoint offsets into the text
	Start int
	End   int
	// Score is a confidence in [0,1]; detectors without a native score pass 1
	Score float64
	// Replacement is substituted under the replace policy; may be empty
	Replacement string
}

// Len returns the codepoint length of the span
func (r Record) Len() int { return r.End - r.Start }

// overlaps reports whether r and o share at least one codepoint
func (r Record) overlaps(o Record) bool {
	return o.Start < r.End && o.End > r.Start
}

// Validate checks a single record against a text of textLen codepoints.
// Inverted, empty, and out of bounds ranges are all rejected; offsets are
// never clamped because silent repair corrupts alignment invisibly.
func Validate(r Record, textLen int) error {
	if r.Start < 0 || r.End > textLen {
		return perr.Validationf("span [%d,%d) outside text of length %d", r.Start, r.End, textLen)
	}
	if r.End <= r.Start {
		return perr.Validationf("span [%d,%d) is empty or inverted", r.Start, r.End)
	}
	return nil
}

// ValidateAll checks every record in order and returns the first failure
func ValidateAll(recs []Record, textLen int) error {
	for _, r := range recs {
		if err := Validate(r, textLen); err != nil {
			return err
		}
	}
	return nil
}
