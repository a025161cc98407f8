package detect

import (
	"testing"
	"unicode/utf8"

	"textguard/internal/core/rulepack"
	"textguard/internal/core/span"
)

func mustPack(t *testing.T) *rulepack.Pack {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return p
}

func findKind(recs []span.Record, kind string) *span.Record {
	for i := range recs {
		if recs[i].Kind == kind {
			return &recs[i]
		}
	}
	return nil
}

func TestDetect_Email(t *testing.T) {
	d := New(mustPack(t))
	text := "reach me at jane.doe@example.com please"
	got := d.Detect(text, Options{})

	rec := findKind(got, "EMAIL_ADDRESS")
	if rec == nil {
		t.Fatalf("no email span in %+v", got)
	}
	if string([]rune(text)[rec.Start:rec.End]) != "jane.doe@example.com" {
		t.Fatalf("wrong range: %+v", rec)
	}
	if rec.Source != span.TierStructured {
		t.Fatalf("expected structured tier")
	}
}

func TestDetect_SSNAndIP(t *testing.T) {
	d := New(mustPack(t))
	got := d.Detect("ssn 078-05-1120 from host 10.0.0.1", Options{})
	if findKind(got, "US_SSN") == nil {
		t.Fatalf("no ssn span: %+v", got)
	}
	if findKind(got, "IP_ADDRESS") == nil {
		t.Fatalf("no ip span: %+v", got)
	}
}

func TestDetect_RuneOffsetsWithMultibytePrefix(t *testing.T) {
	d := New(mustPack(t))
	text := "héllo wörld écrit à jane@example.org merci"
	got := d.Detect(text, Options{})
	rec := findKind(got, "EMAIL_ADDRESS")
	if rec == nil {
		t.Fatalf("no email span: %+v", got)
	}
	runes := []rune(text)
	if frag := string(runes[rec.Start:rec.End]); frag != "jane@example.org" {
		t.Fatalf("offsets not in codepoints: %q %+v", frag, rec)
	}
	if rec.End > utf8.RuneCountInString(text) {
		t.Fatalf("end past rune length: %+v", rec)
	}
}

func TestDetect_KindsFilter(t *testing.T) {
	d := New(mustPack(t))
	text := "mail root@example.com or dial 078-05-1120"
	got := d.Detect(text, Options{Kinds: []string{"US_SSN"}})
	if findKind(got, "EMAIL_ADDRESS") != nil {
		t.Fatalf("kinds filter ignored: %+v", got)
	}
	if findKind(got, "US_SSN") == nil {
		t.Fatalf("requested kind missing: %+v", got)
	}
}

func TestDetect_MinScoreFilter(t *testing.T) {
	d := New(mustPack(t))
	// IN_PASSPORT scores 0.5, below the override
	got := d.Detect("passport A1234567 on file", Options{MinScore: 0.9})
	if findKind(got, "IN_PASSPORT") != nil {
		t.Fatalf("min score override ignored: %+v", got)
	}
}

func TestDetect_BoundaryRejectsGluedMatch(t *testing.T) {
	d := New(mustPack(t))
	// digits glued to letters on both sides are not an aadhaar number
	got := d.Detect("id ref X123412341234Y here", Options{})
	if findKind(got, "IN_AADHAAR") != nil {
		t.Fatalf("glued digits should not match: %+v", got)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := New(mustPack(t))
	if got := d.Detect("   ", Options{}); len(got) != 0 {
		t.Fatalf("expected no spans, got %+v", got)
	}
}
