package span

import (
	"strings"
	"testing"

	perr "textguard/internal/platform/errors"
)

func TestReplace_PreservesTextOutsideSpans(t *testing.T) {
	text := "abcdefghijklmnopqrst" // length 20
	spans := []Record{
		{Start: 0, End: 5, Replacement: "[A]"},
		{Start: 10, End: 15, Replacement: "[B]"},
	}
	out, err := Replace(text, spans)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := "[A]" + text[5:10] + "[B]" + text[15:20]
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestReplace_EmptyReplacementDeletesRange(t *testing.T) {
	out, err := Replace("hello world", []Record{{Start: 5, End: 11}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if out != "hello" {
		t.Fatalf("got %q", out)
	}
}

func TestReplace_CodepointOffsets(t *testing.T) {
	// offsets count runes, not bytes
	text := "héllo wörld"
	out, err := Replace(text, []Record{{Start: 6, End: 11, Replacement: "[X]"}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if out != "héllo [X]" {
		t.Fatalf("got %q", out)
	}
}

func TestRedact_FixedTokenIgnoresReplacement(t *testing.T) {
	text := "call me at 555-0100 ok"
	spans := []Record{{Start: 11, End: 19, Replacement: "should-not-appear"}}
	out, err := Redact(text, spans, "[REDACTED]")
	if err != nil {
		t.Fatalf("redact: %v", err)
	}
	if out != "call me at [REDACTED] ok" {
		t.Fatalf("got %q", out)
	}
	if strings.Contains(out, "should-not-appear") {
		t.Fatalf("per-span replacement leaked into redaction")
	}
}

func TestRedact_SkipsSpanBehindCursor(t *testing.T) {
	text := "0123456789"
	spans := []Record{
		{Start: 0, End: 6},
		{Start: 3, End: 8}, // behind the cursor after the first span applied
	}
	out, err := Redact(text, spans, "#")
	if err != nil {
		t.Fatalf("redact: %v", err)
	}
	if out != "#6789" {
		t.Fatalf("got %q", out)
	}
}

func TestRemove_CollapsesWhitespaceAcrossJoins(t *testing.T) {
	text := "keep this  DROP   and this"
	spans := []Record{{Start: 11, End: 15}}
	out, err := Remove(text, spans)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out != "keep this and this" {
		t.Fatalf("got %q", out)
	}
}

func TestRemove_JoinsBareGapsWithoutSeparator(t *testing.T) {
	// Neighbors of a removed span carry no whitespace of their own;
	// removal must not fabricate a word break between them.
	out, err := Remove("foobarbaz", []Record{{Start: 3, End: 6}})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out != "foobaz" {
		t.Fatalf("got %q, want %q", out, "foobaz")
	}
}

func TestRemove_AllFlaggedYieldsEmpty(t *testing.T) {
	text := "gone"
	out, err := Remove(text, []Record{{Start: 0, End: 4}})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out != "" {
		t.Fatalf("got %q", out)
	}
}

func TestRewrite_UnknownPolicy(t *testing.T) {
	_, err := Rewrite("x", []Record{{Start: 0, End: 1}}, Policy("bogus"), RewriteParams{})
	if err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestRewrite_MalformedSpanIsFatal(t *testing.T) {
	for _, p := range []Policy{PolicyReplace, PolicyRedact, PolicyRemove} {
		t.Run(string(p), func(t *testing.T) {
			_, err := Rewrite("0123456789", []Record{{Start: 10, End: 5}}, p, RewriteParams{RedactToken: "#"})
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("expected validation code, got %v", perr.CodeOf(err))
			}
		})
	}
}

func TestRewrite_NoSpansPassesThrough(t *testing.T) {
	for _, p := range []Policy{PolicyReplace, PolicyRedact, PolicyRemove} {
		out, err := Rewrite("untouched", nil, p, RewriteParams{RedactToken: "#"})
		if err != nil {
			t.Fatalf("rewrite %s: %v", p, err)
		}
		if out != "untouched" {
			t.Fatalf("rewrite %s changed text: %q", p, out)
		}
	}
}
