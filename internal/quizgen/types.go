package quizgen

import (
	"encoding/json"
	"slices"
	"time"
)

// Question is one multiple-choice item. The JSON names match what the
// model is asked to produce.
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctAnswer"`

	// Explanation is filled lazily and never required at creation.
	Explanation string `json:"explanation,omitempty"`
}

// IsCorrect reports whether answer matches the correct option exactly.
func (q Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectOption
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	return slices.Contains(q.Options, opt)
}

func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// QuestionSet is an ordered, fixed-length collection of validated
// questions. It is immutable: accessors hand out copies.
type QuestionSet struct {
	ID        string
	Model     string
	CreatedAt time.Time

	questions []Question
}

// NewQuestionSet copies questions into a new set.
func NewQuestionSet(id, model string, createdAt time.Time, questions []Question) *QuestionSet {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		qs[i] = q.clone()
	}
	return &QuestionSet{ID: id, Model: model, CreatedAt: createdAt, questions: qs}
}

// Len returns the number of questions.
func (s *QuestionSet) Len() int {
	return len(s.questions)
}

// At returns a copy of question i. It panics if i is out of range.
func (s *QuestionSet) At(i int) Question {
	return s.questions[i].clone()
}

// Questions returns a copy of all questions in order.
func (s *QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.clone()
	}
	return out
}

type questionSetJSON struct {
	ID        string     `json:"id"`
	Model     string     `json:"model"`
	CreatedAt time.Time  `json:"createdAt"`
	Questions []Question `json:"questions"`
}

func (s *QuestionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionSetJSON{
		ID:        s.ID,
		Model:     s.Model,
		CreatedAt: s.CreatedAt,
		Questions: s.questions,
	})
}

// GenerateInput is what validators see alongside each question.
type GenerateInput struct {
	Text        string
	Count       int
	OptionCount int
}
