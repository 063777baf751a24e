package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/quizgen"
	"golang.org/x/sync/singleflight"
)

// ExplanationUnavailable is returned by Explain when no explanation could be
// produced.
const ExplanationUnavailable = "Explanation unavailable right now. Please try again."

// DefaultExplainPrompt is the prompt used to explain one reviewed question.
const DefaultExplainPrompt = `Explain briefly, in at most four sentences, why "{{.CorrectAnswer}}" is the correct answer to the following multiple-choice question.
{{- if and .Chosen (ne .Chosen .CorrectAnswer)}} Also explain why "{{.Chosen}}" is wrong.{{end}}
Answer in plain text without markdown.

Question: {{.Question}}
Options:
{{range $i, $o := .Options}}{{inc $i}}. {{$o}}
{{end}}`

// ExplainConfig controls explanation requests.
type ExplainConfig struct {
	PromptTemplate string
	MaxTokens      int
	Temperature    float64
}

// DefaultExplainConfig returns the explanation defaults.
func DefaultExplainConfig() ExplainConfig {
	return ExplainConfig{
		PromptTemplate: DefaultExplainPrompt,
		MaxTokens:      400,
		Temperature:    0.3,
	}
}

type explainInput struct {
	Question      string
	Options       []string
	CorrectAnswer string
	Chosen        string
}

// Explainer produces per-question explanations for a submitted session.
// Results are cached by question index for the Explainer's lifetime and
// concurrent requests for the same index share one provider call. Failures
// are never cached.
type Explainer struct {
	provider  llm.Provider
	cfg       ExplainConfig
	tmpl      *template.Template
	sessionID string
	questions []quizgen.Question
	answers   []string

	mu    sync.Mutex
	cache map[int]string
	group singleflight.Group
}

// NewExplainer snapshots s and returns an Explainer over it. Explanations
// shipped with the questions seed the cache.
func NewExplainer(p llm.Provider, s *Session, cfg ExplainConfig) (*Explainer, error) {
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = DefaultExplainPrompt
	}
	tmpl, err := template.New("explain").
		Option("missingkey=error").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		Parse(cfg.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse explanation template: %w", err)
	}

	e := &Explainer{
		provider:  p,
		cfg:       cfg,
		tmpl:      tmpl,
		sessionID: s.ID,
		questions: make([]quizgen.Question, s.Len()),
		answers:   s.Answers(),
		cache:     make(map[int]string),
	}
	for i := range e.questions {
		q := s.Question(i)
		e.questions[i] = q
		if strings.TrimSpace(q.Explanation) != "" {
			e.cache[i] = q.Explanation
		}
	}
	return e, nil
}

// Cached returns the explanation for question i if one is already known.
func (e *Explainer) Cached(i int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, ok := e.cache[i]
	return text, ok
}

// Explain returns the explanation for question i, asking the provider at
// most once per index. On any failure it returns ExplanationUnavailable.
func (e *Explainer) Explain(ctx context.Context, i int) string {
	if i < 0 || i >= len(e.questions) {
		return ExplanationUnavailable
	}
	if text, ok := e.Cached(i); ok {
		return text
	}

	// The shared request outlives any single caller: its result is cached
	// for everyone, so one caller giving up must not fail the others.
	shared := context.WithoutCancel(ctx)
	ch := e.group.DoChan(strconv.Itoa(i), func() (any, error) {
		if text, ok := e.Cached(i); ok {
			return text, nil
		}
		text, err := e.request(shared, i)
		if err != nil {
			return "", err
		}
		e.mu.Lock()
		e.cache[i] = text
		e.mu.Unlock()
		return text, nil
	})

	select {
	case <-ctx.Done():
		return ExplanationUnavailable
	case res := <-ch:
		if res.Err != nil {
			return ExplanationUnavailable
		}
		return res.Val.(string)
	}
}

func (e *Explainer) request(ctx context.Context, i int) (string, error) {
	q := e.questions[i]
	var b strings.Builder
	err := e.tmpl.Execute(&b, explainInput{
		Question:      q.Prompt,
		Options:       q.Options,
		CorrectAnswer: q.CorrectOption,
		Chosen:        e.answers[i],
	})
	if err != nil {
		return "", fmt.Errorf("render explanation prompt: %w", err)
	}

	ctx = llm.WithSessionID(llm.WithPurpose(ctx, llm.PurposeExplanation), e.sessionID)
	resp, err := e.provider.Generate(ctx, llm.UserPrompt(b.String(), e.cfg.Temperature, e.cfg.MaxTokens))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty explanation")
	}
	return text, nil
}
