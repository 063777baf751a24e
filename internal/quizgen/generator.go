package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/google/uuid"
)

// Generator turns source text into a validated QuestionSet with one
// provider request. At most one generation is in flight per Generator:
// starting a new one cancels the previous, and Close cancels whatever is
// active.
type Generator struct {
	provider llm.Provider
	config   Config
	tmpl     *template.Template

	newID func() string
	now   func() time.Time

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(cfg.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Generator{
		provider: provider,
		config:   cfg,
		tmpl:     tmpl,
		newID:    uuid.NewString,
		now:      time.Now,
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate requests count questions about sourceText. A call superseded by
// a newer one, or cancelled through ctx or Close, returns ErrCanceled.
func (g *Generator) Generate(ctx context.Context, sourceText string, count int) (*QuestionSet, error) {
	input, err := g.checkInput(sourceText, count)
	if err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(g.tmpl, input)
	if err != nil {
		return nil, &ConstraintError{Field: "prompt", Message: fmt.Sprintf("render prompt: %v", err)}
	}

	ctx, seq, done := g.begin(ctx)
	defer done()
	if ctx.Err() != nil {
		return nil, ErrCanceled
	}

	id := g.newID()
	ctx = llm.WithSessionID(llm.WithPurpose(ctx, llm.PurposeQuestionGen), id)
	resp, err := g.provider.Generate(ctx, llm.UserPrompt(prompt, g.config.Temperature, g.config.MaxTokens))
	if !g.current(seq) || errors.Is(ctx.Err(), context.Canceled) {
		return nil, ErrCanceled
	}
	if err != nil {
		return nil, classifyProviderError(err, g.config.SnippetLimit)
	}

	questions, err := parseQuestions(resp.Text, input, g.config)
	if err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = g.provider.ModelID()
	}
	return NewQuestionSet(id, model, g.now(), questions), nil
}

// Cancel aborts the active generation, if any.
func (g *Generator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.seq++
}

// Close cancels the active generation and makes future calls return
// ErrCanceled.
func (g *Generator) Close() {
	g.Cancel()
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

func (g *Generator) checkInput(sourceText string, count int) (GenerateInput, error) {
	text := strings.TrimSpace(sourceText)
	if text == "" {
		return GenerateInput{}, &ConstraintError{Field: "text", Message: "Please enter some text to generate questions from."}
	}
	if count <= 0 {
		return GenerateInput{}, &ConstraintError{Field: "count", Message: "Number of questions must be a positive whole number."}
	}
	if count > g.config.MaxQuestions {
		return GenerateInput{}, &ConstraintError{
			Field:   "count",
			Message: fmt.Sprintf("Number of questions must be at most %d.", g.config.MaxQuestions),
		}
	}
	return GenerateInput{Text: text, Count: count, OptionCount: g.config.OptionCount}, nil
}

// begin registers a new generation, cancelling the previous one.
func (g *Generator) begin(parent context.Context) (context.Context, uint64, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	g.seq++
	seq := g.seq
	g.cancel = cancel
	if g.closed {
		cancel()
	}

	return ctx, seq, func() {
		g.mu.Lock()
		if g.seq == seq {
			g.cancel = nil
		}
		g.mu.Unlock()
		cancel()
	}
}

func (g *Generator) current(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq == seq && !g.closed
}

// classifyProviderError maps llm errors onto the pipeline taxonomy.
func classifyProviderError(err error, snippetLimit int) error {
	if errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Message: "request timed out", Err: err}
	}

	var status *llm.ErrStatus
	if errors.As(err, &status) {
		msg := status.Message
		if msg == "" {
			msg = http.StatusText(status.StatusCode)
		}
		return &ProviderError{Status: status.StatusCode, Message: msg, Err: err}
	}

	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return &MalformedOutputError{
			Reason:  "AI response was cut off before it finished",
			Snippet: snippet(truncated.Text, snippetLimit),
			Err:     err,
		}
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return &MalformedOutputError{
			Reason:  "AI returned an unreadable response",
			Snippet: snippet(invalid.Body, snippetLimit),
			Err:     err,
		}
	}

	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) && unavailable.Err != nil {
		return &ProviderError{Message: unavailable.Err.Error(), Err: err}
	}
	return &ProviderError{Message: err.Error(), Err: err}
}
