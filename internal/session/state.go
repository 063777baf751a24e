package session

import (
	"errors"
	"time"

	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/google/uuid"
)

// Phase is the macro-state of a quiz session.
type Phase int

const (
	PhaseActive    Phase = iota // Answers can change, timer runs
	PhaseSubmitted              // Terminal: answers frozen, timer stopped
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Errors returned by illegal transitions. State is never changed when one
// of these is returned.
var (
	ErrSubmitted      = errors.New("quiz already submitted")
	ErrNotCurrent     = errors.New("only the current question can be answered")
	ErrUnknownOption  = errors.New("option does not belong to this question")
	ErrUnanswered     = errors.New("answer the current question first")
	ErrLastQuestion   = errors.New("already at the last question")
	ErrFirstQuestion  = errors.New("already at the first question")
	ErrIncomplete     = errors.New("answer every question before submitting")
	ErrEmptyQuestions = errors.New("question set is empty")
)

// Session is the state machine for one attempt at a QuestionSet. It is not
// safe for concurrent use; the UI event loop owns it.
type Session struct {
	// ID identifies the attempt in request logs. It matches the ID of the
	// question set so generation and explanation requests share one tag.
	ID string

	set            *quizgen.QuestionSet
	questions      []quizgen.Question
	answers        []string
	current        int
	phase          Phase
	elapsedSeconds int
}

// New starts an Active session over set.
func New(set *quizgen.QuestionSet) (*Session, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptyQuestions
	}
	id := set.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		set:       set,
		questions: set.Questions(),
		answers:   make([]string, set.Len()),
		phase:     PhaseActive,
	}, nil
}

// Set returns the question set the session runs over.
func (s *Session) Set() *quizgen.QuestionSet { return s.set }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the index of the question on screen.
func (s *Session) Current() int { return s.current }

// Phase returns the session's macro-state.
func (s *Session) Phase() Phase { return s.phase }

// Submitted reports whether the session reached its terminal state.
func (s *Session) Submitted() bool { return s.phase == PhaseSubmitted }

// Question returns question i. It panics if i is out of range.
func (s *Session) Question(i int) quizgen.Question { return s.questions[i] }

// Answer returns the recorded answer for question i, or "" if unanswered.
func (s *Session) Answer(i int) string { return s.answers[i] }

// Answers returns a copy of all recorded answers.
func (s *Session) Answers() []string {
	out := make([]string, len(s.answers))
	copy(out, s.answers)
	return out
}

// Elapsed returns the time counted by Tick.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsedSeconds) * time.Second
}

// ElapsedSeconds returns the number of ticks counted while Active.
func (s *Session) ElapsedSeconds() int { return s.elapsedSeconds }
