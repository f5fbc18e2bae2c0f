package studyquiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestBuildFillInBlank(t *testing.T) {
	pool := []string{"mitochondria", "powerhouse", "cell", "chloroplasts", "nucleus"}

	t.Run("blanks the target word", func(t *testing.T) {
		q, err := BuildFillInBlank("The mitochondria is the powerhouse of the cell", "powerhouse", pool, testRand())
		require.NoError(t, err)
		assert.Equal(t, "The mitochondria is the ____ of the cell", q.Prompt)
	})

	t.Run("match is case-insensitive, first occurrence only", func(t *testing.T) {
		q, err := BuildFillInBlank("Cell walls protect the cell", "cell", pool, testRand())
		require.NoError(t, err)
		assert.Equal(t, "____ walls protect the cell", q.Prompt)
	})

	t.Run("short target blanks a whole word, not part of a longer one", func(t *testing.T) {
		q, err := BuildFillInBlank("This is a cell", "is", pool, testRand())
		require.NoError(t, err)
		assert.Equal(t, "This ____ a cell", q.Prompt)
	})

	t.Run("case pairs with different byte lengths do not shift the blank", func(t *testing.T) {
		// Lowercasing İ (U+0130) yields a longer byte sequence, so an
		// index taken from a folded copy would land one byte off.
		q, err := BuildFillInBlank("İstanbul lectures cover mitochondria thoroughly", "mitochondria", pool, testRand())
		require.NoError(t, err)
		assert.Equal(t, "İstanbul lectures cover ____ thoroughly", q.Prompt)
	})

	t.Run("four choices, correct index points at target", func(t *testing.T) {
		q, err := BuildFillInBlank("The mitochondria is the powerhouse of the cell", "mitochondria", pool, testRand())
		require.NoError(t, err)
		require.Len(t, q.Choices, 4)
		require.GreaterOrEqual(t, q.CorrectChoice, 0)
		require.LessOrEqual(t, q.CorrectChoice, 3)
		assert.Equal(t, "mitochondria", q.Choices[q.CorrectChoice])
	})

	t.Run("choices are distinct case-insensitively", func(t *testing.T) {
		mixedPool := []string{"Cell", "cell", "CELL", "nucleus", "ribosome", "enzyme"}
		q, err := BuildFillInBlank("The nucleus directs the cell", "nucleus", mixedPool, testRand())
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, c := range q.Choices {
			key := strings.ToLower(c)
			assert.False(t, seen[key], "duplicate choice %q", c)
			seen[key] = true
		}
	})

	t.Run("small pool pads from filler words", func(t *testing.T) {
		q, err := BuildFillInBlank("Photosynthesis feeds plants", "Photosynthesis", []string{"Photosynthesis"}, testRand())
		require.NoError(t, err)
		require.Len(t, q.Choices, 4)
		assert.Equal(t, "Photosynthesis", q.Choices[q.CorrectChoice])
	})

	t.Run("target absent from sentence", func(t *testing.T) {
		_, err := BuildFillInBlank("The nucleus directs the cell", "ribosome", pool, testRand())
		assert.ErrorIs(t, err, ErrNoEligibleWord)
	})

	t.Run("empty target", func(t *testing.T) {
		_, err := BuildFillInBlank("The nucleus directs the cell", "", pool, testRand())
		assert.ErrorIs(t, err, ErrNoEligibleWord)
	})

	t.Run("same seed gives same shuffle", func(t *testing.T) {
		q1, err := BuildFillInBlank("The mitochondria is the powerhouse of the cell", "cell", pool, testRand())
		require.NoError(t, err)
		q2, err := BuildFillInBlank("The mitochondria is the powerhouse of the cell", "cell", pool, testRand())
		require.NoError(t, err)
		assert.Equal(t, q1, q2)
	})
}

func TestPickTargetWord(t *testing.T) {
	t.Run("prefers the longest word", func(t *testing.T) {
		got, err := PickTargetWord("The mitochondria is the powerhouse of the cell", map[string]bool{})
		require.NoError(t, err)
		assert.Equal(t, "mitochondria", got)
	})

	t.Run("skips used words case-insensitively", func(t *testing.T) {
		used := map[string]bool{"mitochondria": true}
		got, err := PickTargetWord("The Mitochondria is the powerhouse of the cell", used)
		require.NoError(t, err)
		assert.Equal(t, "powerhouse", got)
	})

	t.Run("no eligible word left", func(t *testing.T) {
		used := map[string]bool{"ab": true, "cd": true}
		_, err := PickTargetWord("ab cd x", used)
		assert.ErrorIs(t, err, ErrNoEligibleWord)
	})
}
