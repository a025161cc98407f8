package censor

import (
	"testing"
	"unicode/utf8"

	"textguard/internal/core/rulepack"
)

func mustCensor(t *testing.T) *Censor {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return New(p)
}

func TestCensor_MasksLemmaPreservingLength(t *testing.T) {
	c := mustCensor(t)
	in := "well damn that failed"
	out := c.Censor(in)
	if out != "well **** that failed" {
		t.Fatalf("got %q", out)
	}
	if utf8.RuneCountInString(out) != utf8.RuneCountInString(in) {
		t.Fatalf("length changed")
	}
}

func TestCensor_LeetAndCaseFolding(t *testing.T) {
	c := mustCensor(t)
	cases := map[string]string{
		"oh Sh1t here":  "oh **** here",
		"what the $hit": "what the ****",
		"DAMN it":       "**** it",
	}
	for in, want := range cases {
		if got := c.Censor(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestCensor_TrailingPunctuation(t *testing.T) {
	c := mustCensor(t)
	if got := c.Censor("damn! that hurt"); got != "****! that hurt" {
		t.Fatalf("got %q", got)
	}
}

func TestCensor_StoplistAndBoundaries(t *testing.T) {
	c := mustCensor(t)
	for _, in := range []string{
		"the Scunthorpe problem",
		"we will assess the class",
		"brass and grass for the arsenal",
	} {
		if got := c.Censor(in); got != in {
			t.Fatalf("innocent text changed: %q -> %q", in, got)
		}
	}
}

func TestCensor_EmptyAndClean(t *testing.T) {
	c := mustCensor(t)
	if got := c.Censor(""); got != "" {
		t.Fatalf("got %q", got)
	}
	if !c.Clean("perfectly polite sentence") {
		t.Fatalf("clean text flagged")
	}
	if c.Clean("utter crap") {
		t.Fatalf("profane text passed as clean")
	}
}

func TestCensor_UnicodeLengthPreserved(t *testing.T) {
	c := mustCensor(t)
	in := "héllo damn wörld"
	out := c.Censor(in)
	if utf8.RuneCountInString(out) != utf8.RuneCountInString(in) {
		t.Fatalf("rune length changed: %q", out)
	}
	if out != "héllo **** wörld" {
		t.Fatalf("got %q", out)
	}
}

func TestFold(t *testing.T) {
	if Fold("Sh1T") != "shit" {
		t.Fatalf("fold: %q", Fold("Sh1T"))
	}
	if Fold("ＤＡＭＮ") != "damn" {
		t.Fatalf("width fold: %q", Fold("ＤＡＭＮ"))
	}
}
