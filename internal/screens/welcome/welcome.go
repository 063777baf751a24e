// Package welcome shows a short splash before the compose screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/router"
	"github.com/abhisek/mcqgen/internal/screen"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	cardEnd      = 400 * time.Millisecond
	totalDur     = 1200 * time.Millisecond
)

// cardArt is revealed one option line per tick.
var cardArt = []string{
	"╭──────────────────────╮",
	"│  Q. ?                │",
	"│   ○ A                │",
	"│   ● B                │",
	"│   ○ C                │",
	"│   ○ D                │",
	"╰──────────────────────╯",
}

type tickMsg time.Time

// WelcomeScreen plays a short animation and hands over to the next screen
// on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	model        string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next(). model is
// shown under the tagline when set.
func New(next func() screen.Screen, model string) *WelcomeScreen {
	return &WelcomeScreen{next: next, model: model}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := len(cardArt)
	if w.elapsed < cardEnd {
		lines = min(2+w.tickCount, len(cardArt))
	}
	card := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(cardArt[:lines], "\n"))

	sections := []string{card}
	if w.elapsed >= cardEnd {
		sections = append(sections, "", RenderBanner(width), "",
			theme.Label.Render("Turn your notes into a quiz."))
		if w.model != "" {
			sections = append(sections, theme.Muted.Render("Model: "+w.model))
		}
	}

	sections = append(sections, "", theme.Hint.Render("press any key to start"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
