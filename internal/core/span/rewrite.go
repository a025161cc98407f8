package span

import (
	"strings"

	perr "textguard/internal/platform/errors"
)

// Policy selects how Rewrite transforms flagged ranges
type Policy string

const (
	// PolicyReplace substitutes each span with its own Replacement string
	PolicyReplace Policy = "replace"
	// PolicyRedact substitutes every span with one fixed token
	PolicyRedact Policy = "redact"
	// PolicyRemove drops flagged ranges and normalizes whitespace across the joins
	PolicyRemove Policy = "remove"
)

// RewriteParams carries per-policy knobs
type RewriteParams struct {
	// RedactToken is the literal used under PolicyRedact
	RedactToken string
}

// Rewrite applies a non-overlapping, start-ascending span list to text
// under the given policy. Spans are validated against the text first;
// out of bounds or inverted offsets fail rather than clamp.
func Rewrite(text string, spans []Record, p Policy, params RewriteParams) (string, error) {
	switch p {
	case PolicyReplace:
		return Replace(text, spans)
	case PolicyRedact:
		return Redact(text, spans, params.RedactToken)
	case PolicyRemove:
		return Remove(text, spans)
	default:
		return "", perr.InvalidArgf("unknown rewrite policy %q", p)
	}
}

// Replace substitutes each span with its Replacement, left to right.
// Text outside the spans is preserved exactly.
func Replace(text string, spans []Record) (string, error) {
	if len(spans) == 0 {
		return text, nil
	}
	runes := []rune(text)
	if err := ValidateAll(spans, len(runes)); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	cur := 0
	for _, s := range spans {
		if s.Start < cur {
			return "", perr.Validationf("span [%d,%d) overlaps previously applied range", s.Start, s.End)
		}
		b.WriteString(string(runes[cur:s.Start]))
		b.WriteString(s.Replacement)
		cur = s.End
	}
	b.WriteString(string(runes[cur:]))
	return b.String(), nil
}

// Redact substitutes every span with the one fixed token. Spans whose
// start lies behind the cursor are skipped rather than applied twice;
// a merged list never contains them but the check costs nothing.
func Redact(text string, spans []Record, token string) (string, error) {
	if len(spans) == 0 {
		return text, nil
	}
	runes := []rune(text)
	if err := ValidateAll(spans, len(runes)); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	cur := 0
	for _, s := range spans {
		if s.Start < cur {
			continue
		}
		b.WriteString(string(runes[cur:s.Start]))
		b.WriteString(token)
		cur = s.End
	}
	b.WriteString(string(runes[cur:]))
	return b.String(), nil
}

// Remove concatenates the gaps between spans, then collapses whitespace
// runs in the result to single spaces and trims. Original spacing
// across removed boundaries is intentionally not preserved.
func Remove(text string, spans []Record) (string, error) {
	if len(spans) == 0 {
		return text, nil
	}
	runes := []rune(text)
	if err := ValidateAll(spans, len(runes)); err != nil {
		return "", err
	}

	var kept []string
	cur := 0
	for _, s := range spans {
		if s.Start < cur {
			continue
		}
		kept = append(kept, string(runes[cur:s.Start]))
		cur = s.End
	}
	kept = append(kept, string(runes[cur:]))

	joined := strings.Join(kept, "")
	return strings.Join(strings.Fields(joined), " "), nil
}
