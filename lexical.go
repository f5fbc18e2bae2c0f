package studyquiz

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// minSentenceWords filters out fragments too short to blank a word in.
const minSentenceWords = 4

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
	wordRun     = regexp.MustCompile(`[\p{L}][\p{L}'-]*`)
)

// SplitSentences breaks normalized text on sentence-ending punctuation
// followed by whitespace and keeps sentences of at least minSentenceWords
// words. When nothing qualifies the whole cleaned text is returned as a
// single sentence so the assembler always has something to work with.
func SplitSentences(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	var out []string
	for _, part := range sentenceEnd.Split(text, -1) {
		part = strings.Trim(part, " .!?")
		if part == "" {
			continue
		}
		if len(strings.Fields(part)) < minSentenceWords {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		if whole := strings.Trim(text, " .!?"); whole != "" {
			out = []string{whole}
		}
	}
	return out
}

// ExtractWords tokenizes alphabetic runs of at least 2 characters,
// allowing interior apostrophes and hyphens, case preserved.
func ExtractWords(text string) []string {
	var words []string
	for _, w := range wordRun.FindAllString(text, -1) {
		w = strings.Trim(w, "'-")
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		words = append(words, w)
	}
	return words
}

// RankByFrequency returns the distinct words (case-insensitive identity,
// first-seen casing kept) ordered by descending occurrence count, ties
// broken by first appearance.
func RankByFrequency(words []string) []string {
	counts := make(map[string]int, len(words))
	var order []string
	for _, w := range words {
		key := strings.ToLower(w)
		if counts[key] == 0 {
			order = append(order, w)
		}
		counts[key]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[strings.ToLower(order[i])] > counts[strings.ToLower(order[j])]
	})
	return order
}
