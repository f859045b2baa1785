// Package wordidx is a lightweight, word-only indexer used to rank files by
// overlap with a chat request.
//
// Rules:
//   - Keep only ident-like words: start with a Unicode letter or '_' and
//     continue with letter/digit/'_'.
//   - Numbers and symbols are delimiters; matching is case-insensitive.
package wordidx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Index holds the word occurrence counts of a single document.
type Index struct {
	counts map[string]int
	total  int
}

// Build tokenizes src and collects word counts.
func Build(src []byte) *Index {
	idx := &Index{counts: make(map[string]int)}

	isStart := func(r rune) bool { return r == '_' || unicode.IsLetter(r) }
	isCont := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && w == 1 {
			// Treat invalid bytes as delimiters.
			i++
			continue
		}
		if !isStart(r) {
			i += w
			continue
		}
		start := i
		i += w
		for i < len(src) {
			rc, wc := utf8.DecodeRune(src[i:])
			if !isCont(rc) {
				break
			}
			i += wc
		}
		idx.add(string(src[start:i]))
	}
	return idx
}

func (x *Index) add(word string) {
	x.counts[strings.ToLower(word)]++
	x.total++
}

// Count returns how often word occurs in the document.
func (x *Index) Count(word string) int {
	if x == nil {
		return 0
	}
	return x.counts[strings.ToLower(word)]
}

// Words returns the number of tokens collected.
func (x *Index) Words() int {
	if x == nil {
		return 0
	}
	return x.total
}

// Tokenize splits a free-text query into lowercased ident-like words.
func Tokenize(s string) []string {
	idx := Build([]byte(s))
	out := make([]string, 0, len(idx.counts))
	for w := range idx.counts {
		out = append(out, w)
	}
	return out
}

// Score sums the occurrence counts of the query words in the document,
// counting each distinct word at most maxPerWord times so one repeated
// identifier does not dominate the ranking.
func (x *Index) Score(queryWords []string, maxPerWord int) int {
	if x == nil || len(queryWords) == 0 {
		return 0
	}
	if maxPerWord <= 0 {
		maxPerWord = 5
	}
	score := 0
	for _, w := range queryWords {
		n := x.Count(w)
		if n > maxPerWord {
			n = maxPerWord
		}
		score += n
	}
	return score
}
