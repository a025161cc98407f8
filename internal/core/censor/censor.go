// Package censor masks profane tokens in place, preserving the
// codepoint length of the input so the diff extractor can map the
// masked ranges back to offsets.
//
// Matching folds each candidate token through
// 1 Unicode NFKC normalization
// 2 Case folding
// 3 Remove combining marks and format chars
// 4 Width fold fullwidth to ASCII
// 5 Simple leet folding eg 4/@->a 0->o 1/!->i 3->e 5/$->s 7->t
// The haystack itself is never folded, so surface offsets stay valid.
package censor

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"textguard/internal/core/rulepack"
)

// MaskRune is the character each censored codepoint becomes
const MaskRune = '*'

// pool of fresh transformer chains; transform.Chain values are not
// safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'0': 'o',
	'1': 'i', '!': 'i',
	'3': 'e',
	'5': 's', '$': 's',
	'7': 't',
}

// Censor masks profane tokens against the pack's lemma set
type Censor struct {
	p *rulepack.Pack
}

// New constructs a Censor over a compiled pack
func New(p *rulepack.Pack) *Censor {
	return &Censor{p: p}
}

// Censor returns text with every profane token's runes replaced by
// MaskRune. The output always has the same codepoint length as the
// input. Tokens on the pack stoplist are left alone even when they
// contain a lemma.
func (c *Censor) Censor(text string) string {
	if text == "" {
		return ""
	}
	out := []rune(text)

	i := 0
	for i < len(out) {
		if !isTokenRune(out[i]) {
			i++
			continue
		}
		j := i
		for j < len(out) && isTokenRune(out[j]) {
			j++
		}
		// try the full token first so leet edges like "$hit" fold in,
		// then the token with surrounding punctuation trimmed so a
		// trailing "!" or quote does not defeat the lookup
		if c.profane(string(out[i:j])) {
			mask(out, i, j)
		} else if ti, tj := trim(out, i, j); (ti != i || tj != j) && ti < tj && c.profane(string(out[ti:tj])) {
			mask(out, ti, tj)
		}
		i = j
	}
	return string(out)
}

// Clean reports whether text contains no profane tokens
func (c *Censor) Clean(text string) bool {
	return c.Censor(text) == text
}

func mask(out []rune, i, j int) {
	for k := i; k < j; k++ {
		out[k] = MaskRune
	}
}

// trim narrows [i,j) past surrounding non letter/digit runes
func trim(out []rune, i, j int) (int, int) {
	for i < j && !unicode.IsLetter(out[i]) && !unicode.IsDigit(out[i]) {
		i++
	}
	for j > i && !unicode.IsLetter(out[j-1]) && !unicode.IsDigit(out[j-1]) {
		j--
	}
	return i, j
}

// profane folds one surface token and checks it against the lemma set
func (c *Censor) profane(token string) bool {
	folded := Fold(token)
	if folded == "" {
		return false
	}
	if _, stop := c.p.Stopset[folded]; stop {
		return false
	}
	if _, hit := c.p.Lemmas[folded]; hit {
		return true
	}
	// trailing plural or possessive
	if t := strings.TrimSuffix(folded, "s"); t != folded {
		if _, hit := c.p.Lemmas[t]; hit {
			return true
		}
	}
	return false
}

// Fold runs the transformer chain plus leet folding over s
func Fold(s string) string {
	ch := chainPool.Get().(transform.Transformer)
	ch.Reset()
	folded, _, err := transform.String(ch, s)
	chainPool.Put(ch)
	if err != nil {
		folded = strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if sub, ok := leet[r]; ok {
			r = sub
		}
		b.WriteRune(r)
	}
	return b.String()
}

// token runes cover letters, digits, and the leet substitution chars
func isTokenRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '@', '!', '$', '\'':
		return true
	}
	return false
}
