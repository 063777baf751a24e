package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/abhisek/mcqgen/internal/router"
	"github.com/abhisek/mcqgen/internal/screen"
	"github.com/abhisek/mcqgen/internal/screens/compose"
	"github.com/abhisek/mcqgen/internal/screens/quiz"
	"github.com/abhisek/mcqgen/internal/screens/results"
	"github.com/abhisek/mcqgen/internal/screens/welcome"
	"github.com/abhisek/mcqgen/internal/session"
	"github.com/abhisek/mcqgen/internal/speech"
	"github.com/abhisek/mcqgen/internal/ui/layout"
)

// Options holds the dependencies the screens need.
type Options struct {
	Generator *quizgen.Generator

	// Provider answers explanation requests. Nil disables explanations.
	Provider llm.Provider
	Explain  session.ExplainConfig

	Speaker      speech.Speaker
	DefaultCount int

	// Model is shown in the header when the active screen has no status.
	Model string

	// Splash starts on the welcome screen instead of the compose form.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel builds the screen flow: compose, then quiz, then results.
func newAppModel(opts Options) AppModel {
	if opts.Speaker == nil {
		opts.Speaker = speech.Nop{}
	}
	m := AppModel{opts: opts}
	newCompose := func() screen.Screen {
		return compose.New(compose.Options{
			Generator:    opts.Generator,
			DefaultCount: opts.DefaultCount,
			StartQuiz:    m.startQuiz,
		})
	}
	if opts.Splash {
		m.router = router.New(welcome.New(newCompose, opts.Model))
	} else {
		m.router = router.New(newCompose())
	}
	return m
}

// restart unwinds to the compose screen and clears it.
func restart() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopToRootMsg{} },
		func() tea.Msg { return compose.ResetMsg{} },
	)
}

func (m AppModel) startQuiz(set *quizgen.QuestionSet) (screen.Screen, error) {
	s, err := session.New(set)
	if err != nil {
		return nil, err
	}
	return quiz.New(s, quiz.Options{
		Finish:  m.finishQuiz,
		Restart: restart(),
		Speaker: m.opts.Speaker,
	}), nil
}

func (m AppModel) finishQuiz(s *session.Session) (screen.Screen, error) {
	opts := results.Options{
		Restart: restart(),
		Speaker: m.opts.Speaker,
	}
	if m.opts.Provider != nil {
		ex, err := session.NewExplainer(m.opts.Provider, s, m.opts.Explain)
		if err != nil {
			return nil, err
		}
		opts.Explainer = ex
	}
	return results.New(s, opts), nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}

	case router.PushScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		// The new top screen has not seen the current size yet.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.resize())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) resize() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	return func() tea.Msg { return size }
}

// shutdown cancels in-flight generation, explanation and speech work.
func (m AppModel) shutdown() {
	m.router.CloseAll()
	if m.opts.Generator != nil {
		m.opts.Generator.Close()
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := m.opts.Model
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kh, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kh.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
