package span

import (
	perr "textguard/internal/platform/errors"
)

// ExtractDiff compares an original text against an equal-length
// transformed variant and returns the maximal contiguous differing
// ranges as records of the given kind. It is the offset-recovery path
// for detectors that only return a censored string.
//
// Both inputs must have the same codepoint length; per-character
// substitution is the assumed transform. Length-changing transforms
// cannot be mapped back to offsets and fail outright.
func ExtractDiff(original, transformed, kind string) ([]Record, error) {
	a := []rune(original)
	b := []rune(transformed)
	if len(a) != len(b) {
		return nil, perr.Preconditionf(
			"diff inputs must have equal length: %d vs %d codepoints", len(a), len(b))
	}

	var out []Record
	i := 0
	for i < len(a) {
		if a[i] == b[i] {
			i++
			continue
		}
		start := i
		for i < len(a) && a[i] != b[i] {
			i++
		}
		out = append(out, Record{
			Kind:   kind,
			Source: TierStructured,
			Start:  start,
			End:    i,
			Score:  1,
		})
	}
	return out, nil
}
