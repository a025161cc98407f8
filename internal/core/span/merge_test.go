package span

import (
	"testing"

	perr "textguard/internal/platform/errors"
)

func TestMerge_SingleSourceUnchanged(t *testing.T) {
	in := []Record{
		{Kind: "EMAIL_ADDRESS", Source: TierStructured, Start: 0, End: 5, Score: 1},
		{Kind: "PHONE_NUMBER", Source: TierStructured, Start: 10, End: 15, Score: 1},
	}
	out, err := Merge(20, in)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(out))
	}
	for i, s := range out {
		if s.Start != in[i].Start || s.End != in[i].End || s.Kind != in[i].Kind {
			t.Fatalf("span %d changed: %+v", i, s)
		}
		if s.Source != TierNone {
			t.Fatalf("source tag not stripped on span %d", i)
		}
	}
}

func TestMerge_OutputSortedNonOverlapping(t *testing.T) {
	structured := []Record{
		{Kind: "US_SSN", Source: TierStructured, Start: 12, End: 23, Score: 0.85},
		{Kind: "EMAIL_ADDRESS", Source: TierStructured, Start: 30, End: 45, Score: 1},
	}
	semantic := []Record{
		{Kind: "PERSON", Source: TierSemantic, Start: 0, End: 8, Score: 0.7},
		{Kind: "LOCATION", Source: TierSemantic, Start: 20, End: 28, Score: 0.9},
	}
	out, err := Merge(60, structured, semantic)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Start > out[i].Start {
			t.Fatalf("not sorted at %d: %+v", i, out)
		}
		if out[i-1].End > out[i].Start {
			t.Fatalf("overlap at %d: %+v", i, out)
		}
	}
}

func TestMerge_StructuredBeatsSemantic(t *testing.T) {
	structured := []Record{{Kind: "CREDIT_CARD", Source: TierStructured, Start: 0, End: 10, Score: 0.3}}
	semantic := []Record{{Kind: "PERSON", Source: TierSemantic, Start: 5, End: 8, Score: 0.99}}

	out, err := Merge(20, structured, semantic)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 1 || out[0].Kind != "CREDIT_CARD" || out[0].Start != 0 || out[0].End != 10 {
		t.Fatalf("structured span should win outright: %+v", out)
	}
}

func TestMerge_StructuredCandidateReplacesSemanticCurrent(t *testing.T) {
	// semantic span is accepted first (wider at the same start loses to
	// nothing here, it simply sorts earlier), then the structured
	// candidate overlapping it must replace it
	semantic := []Record{{Kind: "PERSON", Source: TierSemantic, Start: 0, End: 12, Score: 0.99}}
	structured := []Record{{Kind: "EMAIL_ADDRESS", Source: TierStructured, Start: 4, End: 10, Score: 0.5}}

	out, err := Merge(20, semantic, structured)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 1 || out[0].Kind != "EMAIL_ADDRESS" {
		t.Fatalf("structured candidate should replace semantic current: %+v", out)
	}
}

func TestMerge_SameTierLongerWins(t *testing.T) {
	a := []Record{{Kind: "PERSON", Source: TierSemantic, Start: 0, End: 10, Score: 0.1}}
	b := []Record{{Kind: "LOCATION", Source: TierSemantic, Start: 0, End: 5, Score: 0.99}}

	out, err := Merge(20, a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 1 || out[0].End != 10 || out[0].Kind != "PERSON" {
		t.Fatalf("longer same-tier span should win regardless of score: %+v", out)
	}
}

func TestMerge_SameTierScoreBreaksLengthTie(t *testing.T) {
	a := []Record{{Kind: "PERSON", Source: TierSemantic, Start: 0, End: 5, Score: 0.4}}
	b := []Record{{Kind: "NRP", Source: TierSemantic, Start: 2, End: 7, Score: 0.8}}

	out, err := Merge(20, a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 1 || out[0].Kind != "NRP" {
		t.Fatalf("higher score should break equal-length tie: %+v", out)
	}
}

func TestMerge_ExactTieKeepsEarlierAccepted(t *testing.T) {
	a := []Record{{Kind: "PERSON", Source: TierSemantic, Start: 0, End: 5, Score: 0.5}}
	b := []Record{{Kind: "NRP", Source: TierSemantic, Start: 2, End: 7, Score: 0.5}}

	out, err := Merge(20, a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 1 || out[0].Kind != "PERSON" {
		t.Fatalf("exact tie should keep the earlier accepted span: %+v", out)
	}
}

func TestMerge_RejectsMalformedSpans(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
	}{
		{"inverted", Record{Start: 10, End: 5}},
		{"empty", Record{Start: 3, End: 3}},
		{"negative start", Record{Start: -1, End: 4}},
		{"end past text", Record{Start: 0, End: 999}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Merge(20, []Record{tc.rec})
			if err == nil {
				t.Fatalf("expected validation error for %+v", tc.rec)
			}
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("expected validation code, got %v", perr.CodeOf(err))
			}
		})
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	out, err := Merge(10)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}
