package sourcing

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Score compares two product names and returns a similarity in [0, 1]
// together with the tokens the two names share. It is pure and
// deterministic: the same inputs always produce the same output.
//
// Names are NFKC-normalized so full-width characters common in Chinese
// marketplace listings compare equal to their half-width forms, then
// lower-cased and stripped of punctuation. Tokens are whitespace fields,
// with runs of Han characters further split into single-character tokens
// while embedded Latin/digit runs stay whole, so "蓝牙耳机A1" yields
// 蓝, 牙, 耳, 机, a1.
//
// The similarity is the Jaccard overlap of the two token sets scaled by
// a length-difference penalty, so a short name that is a fragment of a
// long one scores below an exact match.
func Score(a, b string) (float64, []string) {
	na := normalizeName(a)
	nb := normalizeName(b)
	if na == "" || nb == "" {
		return 0, nil
	}
	if na == nb {
		return 1.0, uniqueSorted(tokenize(na))
	}

	tokensA := tokenize(na)
	tokensB := tokenize(nb)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0, nil
	}

	setA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}

	common := make([]string, 0)
	for t := range setA {
		if _, ok := setB[t]; ok {
			common = append(common, t)
		}
	}
	if len(common) == 0 {
		return 0, nil
	}
	sort.Strings(common)

	union := len(setA) + len(setB) - len(common)
	overlap := float64(len(common)) / float64(union)

	lenA := runeLength(na)
	lenB := runeLength(nb)
	penalty := 1.0
	if lenA < lenB {
		penalty = float64(lenA) / float64(lenB)
	} else if lenB < lenA {
		penalty = float64(lenB) / float64(lenA)
	}

	return overlap * penalty, common
}

// normalizeName applies NFKC folding, lower-casing, and punctuation
// stripping. Punctuation and symbols become spaces so they still act
// as token boundaries.
func normalizeName(s string) string {
	folded := strings.ToLower(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits a normalized name into comparison tokens. Whitespace
// fields are split further at Han character boundaries: each Han rune is
// its own token, and any consecutive non-Han runes between them form one
// token.
func tokenize(normalized string) []string {
	var tokens []string
	for _, field := range strings.Fields(normalized) {
		var run []rune
		for _, r := range field {
			if unicode.Is(unicode.Han, r) {
				if len(run) > 0 {
					tokens = append(tokens, string(run))
					run = run[:0]
				}
				tokens = append(tokens, string(r))
				continue
			}
			run = append(run, r)
		}
		if len(run) > 0 {
			tokens = append(tokens, string(run))
		}
	}
	return tokens
}

// uniqueSorted deduplicates and sorts a token list
func uniqueSorted(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// runeLength counts the non-space runes of a normalized name
func runeLength(normalized string) int {
	n := 0
	for _, r := range normalized {
		if r != ' ' {
			n++
		}
	}
	return n
}
