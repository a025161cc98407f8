// Package sentence segments text into sentences with exact offset
// recovery back into the original string.
package sentence

import (
	"iter"
	"strings"
)

// Span is one sentence with its half open codepoint range.
// Text is the exact original slice, not a re-rendered copy.
type Span struct {
	Start int
	End   int
	Text  string
}

// Tokenizer returns sentence substrings in reading order. Boundary
// detection quality is entirely the tokenizer's concern; the segmenter
// only recovers offsets.
type Tokenizer interface {
	Split(text string) []string
}

// Segmenter walks tokenizer output and maps each sentence back to a
// codepoint range in the original text
type Segmenter struct {
	tok Tokenizer
}

// New constructs a Segmenter over the given tokenizer, defaulting to
// the rule-based one when nil
func New(tok Tokenizer) *Segmenter {
	if tok == nil {
		tok = RuleTokenizer{}
	}
	return &Segmenter{tok: tok}
}

// Sentences yields sentence spans lazily. Whitespace-only text yields
// nothing; treating empty output as "whole text is one sentence" is
// the caller's fallback, not ours.
//
// Offsets are recovered by searching for the next literal occurrence of
// each candidate sentence at or after the cursor. When the tokenizer
// normalized the sentence so the literal search fails, the cursor
// position itself is taken as the start, which can misalign when
// normalization inserted or removed characters. The cursor always
// advances to the end of the emitted span, so output stays monotonic
// and non-overlapping even under that fallback.
func (s *Segmenter) Sentences(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}
		runes := []rune(text)
		cursor := 0
		for _, sent := range s.tok.Split(text) {
			if sent == "" {
				continue
			}
			want := []rune(sent)
			start := indexFrom(runes, want, cursor)
			var end int
			if start >= 0 {
				end = start + len(want)
			} else {
				start = cursor
				end = cursor + len(want)
				if end > len(runes) {
					end = len(runes)
				}
			}
			if end <= start {
				continue
			}
			if !yield(Span{Start: start, End: end, Text: string(runes[start:end])}) {
				return
			}
			cursor = end
		}
	}
}

// Segment collects Sentences into a slice
func (s *Segmenter) Segment(text string) []Span {
	var out []Span
	for sp := range s.Sentences(text) {
		out = append(out, sp)
	}
	return out
}

// indexFrom finds needle in haystack at or after from, in codepoints
func indexFrom(haystack, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
