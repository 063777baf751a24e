package quizgen

import (
	"strings"
	"text/template"
)

// DefaultPromptTemplate asks for a bare JSON array of question objects.
const DefaultPromptTemplate = `Generate {{.Count}} extremely tough multiple-choice quiz questions based on the following text.

Rules:
- Respond with strictly valid JSON only. No backticks, no markdown, no commentary before or after.
- The JSON must be an array of exactly {{.Count}} objects.
- Each object has "question" (string), "options" (array of exactly {{.OptionCount}} distinct strings) and "correctAnswer" (string).
- "correctAnswer" must be exactly equal to one of the strings in "options".

Text: {{.Text}}`

type promptData struct {
	Count       int
	OptionCount int
	Text        string
}

// buildPrompt renders tmpl for the given input.
func buildPrompt(tmpl *template.Template, input GenerateInput) (string, error) {
	var b strings.Builder
	err := tmpl.Execute(&b, promptData{
		Count:       input.Count,
		OptionCount: input.OptionCount,
		Text:        input.Text,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
