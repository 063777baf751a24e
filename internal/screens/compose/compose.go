// Package compose implements the screen where the user provides source
// text and asks for a quiz.
package compose

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/abhisek/mcqgen/internal/router"
	"github.com/abhisek/mcqgen/internal/screen"
	"github.com/abhisek/mcqgen/internal/source"
	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/layout"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

type field int

const (
	fieldText field = iota
	fieldCount
	fieldFile
	fieldGenerate
	numFields
)

// Options configures the compose screen.
type Options struct {
	Generator    *quizgen.Generator
	DefaultCount int

	// StartQuiz builds the screen for a freshly generated question set.
	StartQuiz func(*quizgen.QuestionSet) (screen.Screen, error)

	// LoadFile reads a source file. Defaults to source.Load.
	LoadFile func(path string) (string, error)
}

// ComposeScreen collects the source text and question count.
type ComposeScreen struct {
	opts Options

	text     textarea.Model
	count    components.TextInput
	file     components.TextInput
	generate components.Button
	spinner  spinner.Model
	focus    field

	generating bool
	seq        uint64
	errMsg     string
	info       string
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)
var _ screen.Closer = (*ComposeScreen)(nil)

// New creates the compose screen.
func New(opts Options) *ComposeScreen {
	if opts.LoadFile == nil {
		opts.LoadFile = source.Load
	}
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = 5
	}

	ta := textarea.New()
	ta.Placeholder = "Paste or type the text to generate questions from..."
	ta.ShowLineNumbers = false
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(10)

	s := &ComposeScreen{
		opts:    opts,
		text:    ta,
		count:   components.NewTextInput("5", true, 3),
		file:    components.NewTextInput("path/to/notes.pdf or .txt, then Enter", false, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
	s.count.SetValue(strconv.Itoa(opts.DefaultCount))
	s.generate = components.NewButton("Generate Questions", false, s.startGeneration)
	return s
}

func (s *ComposeScreen) Init() tea.Cmd {
	return s.setFocus(fieldText)
}

func (s *ComposeScreen) Title() string {
	return "New Quiz"
}

// Close cancels an in-flight generation.
func (s *ComposeScreen) Close() {
	if s.opts.Generator != nil {
		s.opts.Generator.Cancel()
	}
}

func (s *ComposeScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
	}
	if s.focus == fieldFile {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Load file"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := layout.WrapWidth(msg.Width)
		s.text.SetWidth(w)
		s.text.SetHeight(max(4, msg.Height-layout.HeaderHeight-layout.FooterHeight-14))
		s.file.Model.SetWidth(w - 12)
		return s, nil

	case generatedMsg:
		return s.handleGenerated(msg)

	case fileLoadedMsg:
		return s.handleFileLoaded(msg)

	case ResetMsg:
		return s.reset()

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *ComposeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.generating {
		if key == "esc" {
			s.cancelGeneration()
		}
		return s, nil
	}

	switch key {
	case "ctrl+s", "ctrl+g":
		return s, s.startGeneration()
	case "tab":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "esc":
		s.errMsg = ""
		s.info = ""
		return s, nil
	case "enter":
		switch s.focus {
		case fieldFile:
			return s, s.loadFile()
		case fieldCount:
			return s, s.startGeneration()
		case fieldGenerate:
			var cmd tea.Cmd
			s.generate, cmd = s.generate.Update(msg)
			return s, cmd
		}
	}

	return s.forward(msg)
}

// forward passes input to the focused field.
func (s *ComposeScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.focus {
	case fieldText:
		s.text, cmd = s.text.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	case fieldFile:
		s.file, cmd = s.file.Update(msg)
	}
	return s, cmd
}

func (s *ComposeScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.text.Blur()
	s.count.Blur()
	s.file.Blur()
	s.generate.Active = f == fieldGenerate

	switch f {
	case fieldText:
		return s.text.Focus()
	case fieldCount:
		return s.count.Focus()
	case fieldFile:
		return s.file.Focus()
	}
	return nil
}

// startGeneration launches a generation for the current form values.
// Input checks happen in the generator so the rules live in one place.
func (s *ComposeScreen) startGeneration() tea.Cmd {
	if s.generating || s.opts.Generator == nil {
		return nil
	}
	count, err := s.count.NumericValue()
	if err != nil {
		count = 0
	}

	s.seq++
	seq := s.seq
	s.generating = true
	s.errMsg = ""
	s.info = ""

	gen := s.opts.Generator
	text := s.text.Value()
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		set, err := gen.Generate(context.Background(), text, count)
		return generatedMsg{seq: seq, set: set, err: err}
	})
}

func (s *ComposeScreen) cancelGeneration() {
	s.opts.Generator.Cancel()
	s.seq++
	s.generating = false
	s.info = "Generation cancelled."
}

func (s *ComposeScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq {
		return s, nil
	}
	s.generating = false

	if msg.err != nil {
		s.errMsg = quizgen.UserMessage(msg.err)
		return s, nil
	}

	next, err := s.opts.StartQuiz(msg.set)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ComposeScreen) loadFile() tea.Cmd {
	path := strings.TrimSpace(s.file.Value())
	if path == "" {
		s.errMsg = "Enter a file path to load."
		return nil
	}
	load := s.opts.LoadFile
	return func() tea.Msg {
		text, err := load(path)
		return fileLoadedMsg{path: path, text: text, err: err}
	}
}

func (s *ComposeScreen) handleFileLoaded(msg fileLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.errMsg = fmt.Sprintf("Could not load file: %v", msg.err)
		return s, nil
	}
	if strings.TrimSpace(msg.text) == "" {
		s.errMsg = fmt.Sprintf("%s contains no readable text.", filepath.Base(msg.path))
		return s, nil
	}
	s.text.SetValue(msg.text)
	s.errMsg = ""
	s.info = fmt.Sprintf("Loaded %s (%d characters).", filepath.Base(msg.path), len([]rune(msg.text)))
	return s, s.setFocus(fieldText)
}

func (s *ComposeScreen) reset() (screen.Screen, tea.Cmd) {
	if s.generating {
		s.cancelGeneration()
	}
	s.text.Reset()
	s.file.SetValue("")
	s.count.SetValue(strconv.Itoa(s.opts.DefaultCount))
	s.errMsg = ""
	s.info = ""
	return s, s.setFocus(fieldText)
}
