package quizgen

import (
	"strings"
	"testing"
	"text/template"
)

func TestBuildPrompt_Default(t *testing.T) {
	tmpl := template.Must(template.New("prompt").Parse(DefaultPromptTemplate))
	got, err := buildPrompt(tmpl, GenerateInput{Text: "Photosynthesis converts light.", Count: 7, OptionCount: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Generate 7 extremely tough multiple-choice quiz questions",
		"strictly valid JSON only",
		"No backticks",
		"exactly 4 distinct strings",
		`"correctAnswer" must be exactly equal to one of the strings in "options"`,
		"Text: Photosynthesis converts light.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_MissingKeyFails(t *testing.T) {
	tmpl := template.Must(template.New("prompt").Option("missingkey=error").Parse("{{.Nope}}"))
	if _, err := buildPrompt(tmpl, GenerateInput{Text: "x", Count: 1}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
