package span

import (
	"testing"

	perr "textguard/internal/platform/errors"
)

func TestExtractDiff_SingleRun(t *testing.T) {
	orig := "you bad person"
	cens := "you *** person"
	out, err := ExtractDiff(orig, cens, "profanity")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 span, got %+v", out)
	}
	s := out[0]
	if s.Start != 4 || s.End != 7 {
		t.Fatalf("expected [4,7), got [%d,%d)", s.Start, s.End)
	}
	if s.Kind != "profanity" {
		t.Fatalf("kind: %q", s.Kind)
	}
	if orig[s.Start:s.End] != "bad" {
		t.Fatalf("extracted %q", orig[s.Start:s.End])
	}
}

func TestExtractDiff_MultipleRuns(t *testing.T) {
	orig := "aaa bbb ccc"
	cens := "xxx bbb yyy"
	out, err := ExtractDiff(orig, cens, "k")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 spans, got %+v", out)
	}
	if out[0].Start != 0 || out[0].End != 3 || out[1].Start != 8 || out[1].End != 11 {
		t.Fatalf("got %+v", out)
	}
}

func TestExtractDiff_IdenticalInputs(t *testing.T) {
	out, err := ExtractDiff("same", "same", "k")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no spans, got %+v", out)
	}
}

func TestExtractDiff_LengthMismatchIsFatal(t *testing.T) {
	_, err := ExtractDiff("short", "longer text", "k")
	if err == nil {
		t.Fatalf("expected precondition error")
	}
	if perr.CodeOf(err) != perr.ErrorCodePrecondition {
		t.Fatalf("expected precondition code, got %v", perr.CodeOf(err))
	}
}

func TestExtractDiff_RuneLengthNotByteLength(t *testing.T) {
	// same codepoint count, different byte lengths
	orig := "héllo"
	cens := "h***o"
	out, err := ExtractDiff(orig, cens, "k")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(out) != 1 || out[0].Start != 1 || out[0].End != 4 {
		t.Fatalf("got %+v", out)
	}
}

func TestExtractDiff_RoundTripWithRedact(t *testing.T) {
	orig := "you bad person"
	cens := "you *** person"
	spans, err := ExtractDiff(orig, cens, "profanity")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	out, err := Redact(orig, spans, "[MASK]")
	if err != nil {
		t.Fatalf("redact: %v", err)
	}
	if out != "you [MASK] person" {
		t.Fatalf("got %q", out)
	}
}
