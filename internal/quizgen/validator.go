package quizgen

import (
	"fmt"
	"strings"
)

// Validator checks a decoded question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "content".
	Name() string

	// Validate returns nil if q passes, otherwise a ValidationError.
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// ContentValidator rejects blank prompts, blank options and duplicate
// options.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content" }

func (v *ContentValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return &ValidationError{Validator: v.Name(), Message: "options contain an empty string"}
		}
		if seen[opt] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %q appears more than once", opt)}
		}
		seen[opt] = true
	}
	return nil
}

// OptionCountValidator requires exactly input.OptionCount options.
type OptionCountValidator struct{}

func (v *OptionCountValidator) Name() string { return "option-count" }

func (v *OptionCountValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	if input.OptionCount > 0 && len(q.Options) != input.OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", input.OptionCount, len(q.Options)),
		}
	}
	return nil
}

// AnswerMembershipValidator requires correctAnswer to be one of options.
type AnswerMembershipValidator struct{}

func (v *AnswerMembershipValidator) Name() string { return "answer-membership" }

func (v *AnswerMembershipValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if !q.HasOption(q.CorrectOption) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correctAnswer %q is not one of the options", q.CorrectOption),
		}
	}
	return nil
}
