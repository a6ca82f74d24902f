package quiz

import (
	"testing"

	"quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.NewQuestion(
			"question",
			map[string]string{"A": "yes", "B": "no"},
			map[string]bool{"A": true, "B": false},
		)
		q.ID = uint(i + 1)
		pool = append(pool, *q)
	}
	return pool
}

func TestStartSamplesWithoutReplacement(t *testing.T) {
	pool := makePool(10)

	s, err := Start(pool, 3)
	require.NoError(t, err)
	require.Len(t, s.Questions, 3)

	seen := make(map[uint]bool)
	for _, q := range s.Questions {
		assert.False(t, seen[q.ID], "question %d sampled twice", q.ID)
		seen[q.ID] = true
	}
}

func TestStartSizeLargerThanPool(t *testing.T) {
	pool := makePool(4)

	s, err := Start(pool, 10)
	require.NoError(t, err)
	assert.Len(t, s.Questions, 4)
}

func TestStartClampsNonPositiveSize(t *testing.T) {
	pool := makePool(5)

	for _, size := range []int{0, -3} {
		s, err := Start(pool, size)
		require.NoError(t, err)
		assert.Len(t, s.Questions, 1)
	}
}

func TestStartEmptyPool(t *testing.T) {
	_, err := Start(nil, 5)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestStartDoesNotMutatePool(t *testing.T) {
	pool := makePool(6)
	original := make([]uint, len(pool))
	for i, q := range pool {
		original[i] = q.ID
	}

	_, err := Start(pool, 6)
	require.NoError(t, err)

	for i, q := range pool {
		assert.Equal(t, original[i], q.ID)
	}
}

func TestAnswerGrading(t *testing.T) {
	q := model.NewQuestion(
		"2+2?",
		map[string]string{"A": "3", "B": "4"},
		map[string]bool{"A": false, "B": true},
	)
	q.ID = 1

	s, err := Start([]model.Question{*q}, 1)
	require.NoError(t, err)

	correct, err := s.Answer(0, "A")
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Equal(t, []string{"B"}, s.Questions[0].CorrectLabels())

	require.True(t, s.Complete())
	assert.Equal(t, 0, s.CorrectCount())
	assert.Equal(t, "0 out of 1 (0.00%)", s.Result())
}

func TestAnswerCorrectResult(t *testing.T) {
	q := model.NewQuestion(
		"2+2?",
		map[string]string{"A": "3", "B": "4"},
		map[string]bool{"A": false, "B": true},
	)
	q.ID = 1

	s, err := Start([]model.Question{*q}, 1)
	require.NoError(t, err)

	correct, err := s.Answer(0, "B")
	require.NoError(t, err)
	assert.True(t, correct)

	require.True(t, s.Complete())
	assert.Equal(t, 1, s.CorrectCount())
	assert.InDelta(t, 100.0, s.Percent(), 0.001)
	assert.Equal(t, "1 out of 1 (100.00%)", s.Result())
}

func TestAnswerOnlyOnce(t *testing.T) {
	s, err := Start(makePool(2), 2)
	require.NoError(t, err)

	_, err = s.Answer(0, "A")
	require.NoError(t, err)

	_, err = s.Answer(0, "B")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Len(t, s.Answers, 1)
}

func TestAnswerIndexOutOfRange(t *testing.T) {
	s, err := Start(makePool(2), 2)
	require.NoError(t, err)

	_, err = s.Answer(5, "A")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.Answer(-1, "A")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestUnknownLabelIsIncorrect(t *testing.T) {
	s, err := Start(makePool(1), 1)
	require.NoError(t, err)

	correct, err := s.Answer(0, "Z")
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestPercentRounding(t *testing.T) {
	pool := makePool(3)

	s, err := Start(pool, 3)
	require.NoError(t, err)

	// 一对两错：33.33%
	_, err = s.Answer(0, "A")
	require.NoError(t, err)
	_, err = s.Answer(1, "B")
	require.NoError(t, err)
	_, err = s.Answer(2, "B")
	require.NoError(t, err)

	require.True(t, s.Complete())
	assert.Equal(t, 1, s.CorrectCount())
	assert.InDelta(t, 33.33, s.Percent(), 0.001)
	assert.Equal(t, "1 out of 3 (33.33%)", s.Result())
}

func TestCompleteRequiresAllAnswers(t *testing.T) {
	s, err := Start(makePool(3), 3)
	require.NoError(t, err)

	assert.False(t, s.Complete())
	_, _ = s.Answer(0, "A")
	_, _ = s.Answer(1, "A")
	assert.False(t, s.Complete())
	_, _ = s.Answer(2, "A")
	assert.True(t, s.Complete())
}

func TestRestartClearsSession(t *testing.T) {
	s, err := Start(makePool(3), 2)
	require.NoError(t, err)
	_, _ = s.Answer(0, "A")

	s.Restart()

	assert.Empty(t, s.Questions)
	assert.Empty(t, s.Answers)
	assert.False(t, s.Complete())
}

func TestRecordLookup(t *testing.T) {
	s, err := Start(makePool(2), 2)
	require.NoError(t, err)

	_, ok := s.Record(0)
	assert.False(t, ok)

	_, err = s.Answer(0, "A")
	require.NoError(t, err)

	rec, ok := s.Record(0)
	require.True(t, ok)
	assert.Equal(t, 0, rec.Index)
	assert.True(t, rec.IsCorrect)
	assert.True(t, s.Answered(0))
	assert.False(t, s.Answered(1))
}
