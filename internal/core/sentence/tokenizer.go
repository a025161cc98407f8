package sentence

import (
	"strings"
	"unicode"
)

// abbreviations that end with a period but do not end a sentence
var abbrevs = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {},
	"sr": {}, "jr": {}, "st": {}, "vs": {}, "etc": {},
	"e.g": {}, "i.e": {}, "inc": {}, "ltd": {}, "co": {},
}

// RuleTokenizer is a dependency-free sentence splitter: a sentence ends
// at a run of terminal punctuation followed by whitespace or EOF. It
// does not handle quoted speech or decimal-heavy prose as well as a
// trained model would; callers needing that plug in their own Tokenizer.
type RuleTokenizer struct{}

// Split returns the sentences of text in order, terminators included
func (RuleTokenizer) Split(text string) []string {
	var out []string
	runes := []rune(text)
	begin := 0
	i := 0
	for i < len(runes) {
		if !isTerminal(runes[i]) {
			i++
			continue
		}
		// swallow the whole terminator run
		j := i
		for j < len(runes) && isTerminal(runes[j]) {
			j++
		}
		atEnd := j >= len(runes)
		if !atEnd && !unicode.IsSpace(runes[j]) {
			// mid-token punctuation, eg "3.14" or "e.g"
			i = j
			continue
		}
		if runes[i] == '.' && j-i == 1 && isAbbreviation(runes[begin:i]) {
			i = j
			continue
		}
		if s := strings.TrimSpace(string(runes[begin:j])); s != "" {
			out = append(out, s)
		}
		begin = j
		i = j
	}
	if s := strings.TrimSpace(string(runes[begin:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isAbbreviation reports whether the token right before a period is a
// known abbreviation
func isAbbreviation(before []rune) bool {
	k := len(before)
	for k > 0 && !unicode.IsSpace(before[k-1]) {
		k--
	}
	word := strings.ToLower(string(before[k:]))
	word = strings.TrimRight(word, ".")
	if word == "" {
		return false
	}
	if _, ok := abbrevs[word]; ok {
		return true
	}
	// single uppercase initial, eg "J. Smith"
	if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
		return true
	}
	return false
}
