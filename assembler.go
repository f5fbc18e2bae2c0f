package studyquiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Assembler builds a full quiz from normalized material by walking
// sentences in document order and blanking one word per sentence.
type Assembler struct {
	rng *rand.Rand
}

// NewAssembler creates an assembler using the given random source for
// choice shuffling. Seed the source for deterministic output.
func NewAssembler(rng *rand.Rand) *Assembler {
	return &Assembler{rng: rng}
}

// Assemble produces a quiz of exactly ClampQuestionCount(count)
// questions. Sentences that offer no eligible word, or whose best word
// was already used as an answer, are skipped. When the material runs out
// before the count is reached, templated filler questions built from the
// vocabulary frequency ranking pad the quiz; already-built questions are
// recycled only when even the vocabulary is exhausted. The only failure
// is ErrNoUsableMaterial.
func (a *Assembler) Assemble(material string, count int) (*Quiz, error) {
	count = ClampQuestionCount(count)

	text := Normalize(material)
	words := ExtractWords(text)
	if len(words) == 0 {
		return nil, ErrNoUsableMaterial
	}
	pool := RankByFrequency(words)
	sentences := SplitSentences(text)

	used := make(map[string]bool)
	var drafts []draft

	for _, sentence := range sentences {
		if len(drafts) == count {
			break
		}
		target, err := PickTargetWord(sentence, used)
		if err != nil {
			continue
		}
		q, err := BuildFillInBlank(sentence, target, pool, a.rng)
		if err != nil {
			continue
		}
		used[strings.ToLower(target)] = true
		drafts = append(drafts, draft{Question: q, Answer: target})
		VerboseLog("assembled question %d from sentence %q (answer %q)", len(drafts), sentence, target)
	}

	drafts = a.pad(drafts, count, pool, used)

	return finalize(drafts), nil
}

// pad fills drafts up to count with templated vocabulary questions, then
// with recycled copies of existing questions.
func (a *Assembler) pad(drafts []draft, count int, pool []string, used map[string]bool) []draft {
	for _, w := range pool {
		if len(drafts) >= count {
			break
		}
		if used[strings.ToLower(w)] {
			continue
		}
		used[strings.ToLower(w)] = true
		drafts = append(drafts, a.templatedDraft(w))
		VerboseLog("padded quiz with templated question for %q", w)
	}

	for i := 0; len(drafts) < count && len(drafts) > 0; i++ {
		src := drafts[i%len(drafts)]
		recycled := src.Question
		recycled.Choices = append([]string(nil), src.Question.Choices...)
		recycled.Prompt = src.Question.Prompt + " (repeated for additional practice)"
		drafts = append(drafts, draft{Question: recycled, Answer: src.Answer})
	}
	return drafts
}

// templatedDraft builds the "which word appeared" filler question with w
// as the correct choice. Distractors come from the static filler list,
// not the material, so the right answer stays findable.
func (a *Assembler) templatedDraft(w string) draft {
	choices, correct := buildChoices(w, fillerWords, a.rng)
	return draft{
		Question: Question{
			Prompt:        "Which of these words appears in the study material?",
			Choices:       choices,
			CorrectChoice: correct,
		},
		Answer: w,
	}
}

// finalize strips generation bookkeeping and stamps quiz metadata.
func finalize(drafts []draft) *Quiz {
	questions := make([]Question, len(drafts))
	for i, d := range drafts {
		questions[i] = d.Question
	}
	return &Quiz{
		ID:        uuid.NewString(),
		Questions: questions,
		CreatedAt: time.Now(),
	}
}

// sampleQuestion is the placeholder used by the templated strategy and
// by remote-generation padding.
func sampleQuestion(n int) Question {
	return Question{
		Prompt:        fmt.Sprintf("Sample Question %d?", n),
		Choices:       []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectChoice: 0,
	}
}
