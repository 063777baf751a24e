// Package results shows the score of a submitted quiz and lets the user
// review each question with an explanation.
package results

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgen/internal/screen"
	sess "github.com/abhisek/mcqgen/internal/session"
	"github.com/abhisek/mcqgen/internal/speech"
	"github.com/abhisek/mcqgen/internal/ui/layout"
)

// Explainer produces the explanation for one question of the session.
type Explainer interface {
	Cached(i int) (string, bool)
	Explain(ctx context.Context, i int) string
}

// Options wires the results screen to the rest of the app.
type Options struct {
	// Explainer answers "why" for a reviewed question. Nil disables it.
	Explainer Explainer

	// Restart returns the user to an empty compose form.
	Restart tea.Cmd

	// Speaker reads the reviewed question aloud. Defaults to speech.Nop.
	Speaker speech.Speaker
}

// explainedMsg carries an explanation for question index.
type explainedMsg struct {
	index int
	text  string
}

type spokenMsg struct {
	err error
}

// ResultsScreen displays the summary and the review list.
type ResultsScreen struct {
	summary *sess.Summary
	opts    Options

	cursor       int
	explanations map[int]string
	loading      map[int]bool
	notice       string

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)
var _ screen.Closer = (*ResultsScreen)(nil)

// New creates the results screen for a submitted session.
func New(s *sess.Session, opts Options) *ResultsScreen {
	if opts.Speaker == nil {
		opts.Speaker = speech.Nop{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ResultsScreen{
		summary:      sess.BuildSummary(s),
		opts:         opts,
		explanations: make(map[int]string),
		loading:      make(map[int]bool),
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Status() string {
	return fmt.Sprintf("Score %d/%d", r.summary.Score, r.summary.Total)
}

// Close abandons pending explanation and speech requests.
func (r *ResultsScreen) Close() {
	r.cancel()
}

// Summary returns the summary being displayed.
func (r *ResultsScreen) Summary() *sess.Summary {
	return r.summary
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑/↓", Description: "Review"}}
	if r.opts.Explainer != nil {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Speak"},
		layout.KeyHint{Key: "R", Description: "New quiz"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		delete(r.loading, msg.index)
		r.explanations[msg.index] = msg.text
		return r, nil

	case spokenMsg:
		if msg.err != nil {
			r.notice = "Text-to-speech is not available right now."
		}
		return r, nil

	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ResultsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.summary.Items)-1 {
			r.cursor++
		}
	case "e", "enter":
		return r, r.explain(r.cursor)
	case "s":
		return r, r.speak(r.cursor)
	case "r", "esc":
		r.Close()
		return r, r.opts.Restart
	}
	return r, nil
}

// explain shows a cached explanation right away, or requests one.
func (r *ResultsScreen) explain(i int) tea.Cmd {
	if r.opts.Explainer == nil || r.loading[i] {
		return nil
	}
	if _, ok := r.explanations[i]; ok && r.explanations[i] != sess.ExplanationUnavailable {
		return nil
	}
	if text, ok := r.opts.Explainer.Cached(i); ok {
		r.explanations[i] = text
		return nil
	}

	delete(r.explanations, i)
	r.loading[i] = true
	ctx, ex := r.ctx, r.opts.Explainer
	return func() tea.Msg {
		return explainedMsg{index: i, text: ex.Explain(ctx, i)}
	}
}

func (r *ResultsScreen) speak(i int) tea.Cmd {
	if i >= len(r.summary.Items) {
		return nil
	}
	item := r.summary.Items[i]
	text := speech.QuestionText(item.Prompt, item.Options) +
		" The correct answer is " + item.CorrectOption + "."
	r.notice = ""
	ctx, speaker := r.ctx, r.opts.Speaker
	return func() tea.Msg {
		return spokenMsg{err: speaker.Speak(ctx, text)}
	}
}
