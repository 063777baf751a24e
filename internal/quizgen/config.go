package quizgen

import (
	"fmt"
	"text/template"
)

// Config controls the behavior of the Generator.
type Config struct {
	// PromptTemplate is a text/template rendered with .Count, .OptionCount
	// and .Text.
	PromptTemplate string

	// OptionCount is the exact number of options every question must have.
	OptionCount int

	// MaxQuestions caps the requested count.
	MaxQuestions int

	// MaxTokens is the token budget for the LLM response. Zero leaves it
	// to the provider.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// SnippetLimit bounds how much offending model text an error carries.
	SnippetLimit int

	// Validators run in order on every decoded question after the
	// structural check; the first failure stops the pipeline.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		PromptTemplate: DefaultPromptTemplate,
		OptionCount:    4,
		MaxQuestions:   50,
		Temperature:    0.7,
		SnippetLimit:   2000,
		Validators: []Validator{
			&ContentValidator{},
			&OptionCountValidator{},
			&AnswerMembershipValidator{},
		},
	}
}

// Validate checks the config for values the pipeline cannot work with.
func (c Config) Validate() error {
	if c.OptionCount < 2 {
		return fmt.Errorf("option count must be at least 2, got %d", c.OptionCount)
	}
	if c.MaxQuestions < 1 {
		return fmt.Errorf("max questions must be positive, got %d", c.MaxQuestions)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	if _, err := template.New("prompt").Parse(c.PromptTemplate); err != nil {
		return fmt.Errorf("prompt template: %w", err)
	}
	return nil
}
