package studyquiz

import (
	"math/rand"
	"regexp"
	"strings"
)

// BlankMarker replaces the target word in a fill-in-the-blank prompt.
const BlankMarker = "____"

// fillerWords pads the distractor set when the material's own vocabulary
// runs out. Residual case-insensitive duplicates from this list are a
// documented last resort, not silently repaired.
var fillerWords = []string{
	"knowledge", "learning", "concept", "practice",
	"theory", "memory", "process", "system",
}

// draft is a question plus the generation bookkeeping that must not
// leak to callers. The assembler strips it during finalization.
type draft struct {
	Question Question
	Answer   string
}

// BuildFillInBlank replaces the first case-insensitive occurrence of
// target in sentence with the blank marker and assembles 4 shuffled
// choices: the target plus 3 distractors drawn from pool (minus the
// target), padded from the static filler list when pool is too small.
// Returns ErrNoEligibleWord when the target does not occur in the
// sentence.
func BuildFillInBlank(sentence, target string, pool []string, rng *rand.Rand) (Question, error) {
	if target == "" {
		return Question{}, ErrNoEligibleWord
	}
	loc := findTarget(sentence, target)
	if loc == nil {
		return Question{}, ErrNoEligibleWord
	}
	prompt := sentence[:loc[0]] + BlankMarker + sentence[loc[1]:]

	choices, correct := buildChoices(target, pool, rng)
	return Question{
		Prompt:        prompt,
		Choices:       choices,
		CorrectChoice: correct,
	}, nil
}

// findTarget returns the byte range of the first case-insensitive
// occurrence of target in sentence, or nil. Matching runs against
// sentence itself, never a case-folded copy, because folding can change
// byte lengths and skew the offsets. Whole-word matches are preferred so
// a short target never blanks the inside of a longer word; the
// unanchored match is kept as a fallback for targets \b cannot delimit.
func findTarget(sentence, target string) []int {
	quoted := regexp.QuoteMeta(target)
	if loc := regexp.MustCompile(`(?i)\b` + quoted + `\b`).FindStringIndex(sentence); loc != nil {
		return loc
	}
	return regexp.MustCompile(`(?i)` + quoted).FindStringIndex(sentence)
}

// PickTargetWord chooses the answer word for a sentence: the longest
// extractable word whose lowercase form is not in used. Longest-first
// biases toward content words over articles and prepositions. Returns
// ErrNoEligibleWord when every word is used up or too short.
func PickTargetWord(sentence string, used map[string]bool) (string, error) {
	var best string
	for _, w := range ExtractWords(sentence) {
		if used[strings.ToLower(w)] {
			continue
		}
		if len(w) > len(best) {
			best = w
		}
	}
	if best == "" {
		return "", ErrNoEligibleWord
	}
	return best, nil
}

// buildChoices returns 4 shuffled choices containing target and reports
// the target's post-shuffle index.
func buildChoices(target string, pool []string, rng *rand.Rand) ([]string, int) {
	distractors := sampleDistractors(target, pool, rng)
	choices := append(distractors, target)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	correct := 0
	for i, c := range choices {
		if c == target {
			correct = i
			break
		}
	}
	return choices, correct
}

// sampleDistractors picks up to 3 distinct pool words that are not the
// target (case-insensitive), then cycles through the filler list to pad
// to exactly 3.
func sampleDistractors(target string, pool []string, rng *rand.Rand) []string {
	seen := map[string]bool{strings.ToLower(target): true}
	var candidates []string
	for _, w := range pool {
		key := strings.ToLower(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, w)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	for i := 0; len(candidates) < 3; i++ {
		w := fillerWords[i%len(fillerWords)]
		if strings.EqualFold(w, target) {
			continue
		}
		if i >= len(fillerWords) || !seen[strings.ToLower(w)] {
			candidates = append(candidates, w)
			seen[strings.ToLower(w)] = true
		}
	}
	return candidates
}
