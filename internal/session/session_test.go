package session

import (
	"testing"
	"time"

	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(n int) *quizgen.QuestionSet {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			Prompt:        "Question " + string(rune('A'+i)),
			Options:       []string{"w", "x", "y", "z"},
			CorrectOption: "x",
		}
	}
	return quizgen.NewQuestionSet("set-1", "mock", time.Unix(0, 0), qs)
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := New(newTestSet(n))
	require.NoError(t, err)
	return s
}

// answerAll answers every question with the given options, in order.
func answerAll(t *testing.T, s *Session, answers ...string) {
	t.Helper()
	for i, a := range answers {
		require.NoError(t, s.SelectOption(i, a))
		if i < len(answers)-1 {
			require.NoError(t, s.Advance())
		}
	}
}

func TestNew(t *testing.T) {
	s := newTestSession(t, 3)
	assert.Equal(t, "set-1", s.ID)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, []string{"", "", ""}, s.Answers())
}

func TestNew_EmptySet(t *testing.T) {
	_, err := New(quizgen.NewQuestionSet("x", "m", time.Now(), nil))
	assert.ErrorIs(t, err, ErrEmptyQuestions)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrEmptyQuestions)
}

func TestSelectOption_LastWriteWins(t *testing.T) {
	s := newTestSession(t, 2)
	require.NoError(t, s.SelectOption(0, "w"))
	require.NoError(t, s.SelectOption(0, "y"))
	assert.Equal(t, "y", s.Answer(0))
}

func TestSelectOption_Rejections(t *testing.T) {
	s := newTestSession(t, 2)

	assert.ErrorIs(t, s.SelectOption(1, "x"), ErrNotCurrent)
	assert.ErrorIs(t, s.SelectOption(0, "not an option"), ErrUnknownOption)
	assert.ErrorIs(t, s.SelectOption(0, ""), ErrUnknownOption)
	assert.Equal(t, []string{"", ""}, s.Answers())
}

func TestAdvance_RequiresAnswer(t *testing.T) {
	s := newTestSession(t, 2)
	assert.False(t, s.CanAdvance())
	assert.ErrorIs(t, s.Advance(), ErrUnanswered)
	assert.Equal(t, 0, s.Current())

	require.NoError(t, s.SelectOption(0, "x"))
	assert.True(t, s.CanAdvance())
	require.NoError(t, s.Advance())
	assert.Equal(t, 1, s.Current())
}

func TestNavigationBounds(t *testing.T) {
	s := newTestSession(t, 2)

	assert.False(t, s.CanRetreat())
	assert.ErrorIs(t, s.Retreat(), ErrFirstQuestion)

	answerAll(t, s, "x", "w")
	assert.Equal(t, 1, s.Current())
	assert.False(t, s.CanAdvance())
	assert.ErrorIs(t, s.Advance(), ErrLastQuestion)
	assert.Equal(t, 1, s.Current())
}

func TestRetreat_KeepsAnswers(t *testing.T) {
	s := newTestSession(t, 3)
	answerAll(t, s, "x", "y")
	require.NoError(t, s.Retreat())
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, []string{"x", "y", ""}, s.Answers())

	// Changing an earlier answer after going back is allowed.
	require.NoError(t, s.SelectOption(0, "z"))
	assert.Equal(t, "z", s.Answer(0))
}

func TestSubmit_RequiresAllAnswers(t *testing.T) {
	s := newTestSession(t, 3)
	answerAll(t, s, "x", "y")
	assert.False(t, s.CanSubmit())
	assert.ErrorIs(t, s.Submit(), ErrIncomplete)
	assert.Equal(t, PhaseActive, s.Phase())

	require.NoError(t, s.Advance())
	require.NoError(t, s.SelectOption(2, "x"))
	assert.True(t, s.CanSubmit())
	require.NoError(t, s.Submit())
	assert.True(t, s.Submitted())
}

func TestSubmitted_IsTerminal(t *testing.T) {
	s := newTestSession(t, 2)
	answerAll(t, s, "x", "x")
	require.NoError(t, s.Submit())

	before := s.Answers()
	assert.ErrorIs(t, s.SelectOption(1, "w"), ErrSubmitted)
	assert.ErrorIs(t, s.Advance(), ErrSubmitted)
	assert.ErrorIs(t, s.Retreat(), ErrSubmitted)
	assert.ErrorIs(t, s.Submit(), ErrSubmitted)
	assert.Equal(t, before, s.Answers())
	assert.Equal(t, 1, s.Current())
	assert.False(t, s.CanAdvance())
	assert.False(t, s.CanRetreat())
	assert.False(t, s.CanSubmit())
}

func TestTick(t *testing.T) {
	s := newTestSession(t, 1)
	for range 65 {
		s.Tick()
	}
	assert.Equal(t, 65*time.Second, s.Elapsed())

	require.NoError(t, s.SelectOption(0, "x"))
	require.NoError(t, s.Submit())
	s.Tick()
	s.Tick()
	assert.Equal(t, 65, s.ElapsedSeconds())
}

func TestScoreAndAttempted(t *testing.T) {
	s := newTestSession(t, 4)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Attempted())

	answerAll(t, s, "x", "w", "x")
	assert.Equal(t, 2, s.Score())
	assert.Equal(t, 3, s.Attempted())
	assert.True(t, s.IsCorrect(0))
	assert.False(t, s.IsCorrect(1))
	assert.False(t, s.IsCorrect(3))

	require.NoError(t, s.Advance())
	require.NoError(t, s.SelectOption(3, "x"))
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, 75, s.Percentage())
	assert.LessOrEqual(t, s.Score(), s.Len())
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half up
		{0, 5, 0},
		{5, 5, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.score, tt.total), "%d/%d", tt.score, tt.total)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "submitted", PhaseSubmitted.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
