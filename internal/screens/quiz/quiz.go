// Package quiz implements the screen for answering a generated quiz.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgen/internal/router"
	"github.com/abhisek/mcqgen/internal/screen"
	sess "github.com/abhisek/mcqgen/internal/session"
	"github.com/abhisek/mcqgen/internal/speech"
	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/layout"
)

// Options wires the quiz screen to the rest of the app.
type Options struct {
	// Finish builds the results screen once the session is submitted.
	Finish func(*sess.Session) (screen.Screen, error)

	// Restart returns the user to an empty compose form.
	Restart tea.Cmd

	// Speaker reads questions aloud. Defaults to speech.Nop.
	Speaker speech.Speaker
}

// QuizScreen presents one question at a time and drives the session.
type QuizScreen struct {
	sess *sess.Session
	opts Options

	choice         components.MultiChoice
	confirmingQuit bool
	errMsg         string
	notice         string

	speaking    bool
	stopSpeech  context.CancelFunc
	timerActive bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen over an active session.
func New(s *sess.Session, opts Options) *QuizScreen {
	if opts.Speaker == nil {
		opts.Speaker = speech.Nop{}
	}
	q := &QuizScreen{sess: s, opts: opts}
	q.syncChoice()
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	q.timerActive = true
	return tickCmd()
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the elapsed time in the header.
func (q *QuizScreen) Status() string {
	return "⏱ " + sess.FormatClock(q.sess.Elapsed())
}

// Close stops the timer and any speech in progress.
func (q *QuizScreen) Close() {
	q.timerActive = false
	q.cancelSpeech()
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-9/↑↓", Description: "Choose"},
		{Key: "←/→", Description: "Prev/Next"},
	}
	if q.sess.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: "F", Description: "Finish"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Speak"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if !q.timerActive || q.sess.Submitted() {
			return q, nil
		}
		q.sess.Tick()
		return q, tickCmd()

	case spokenMsg:
		q.speaking = false
		if msg.err != nil {
			q.notice = speechNotice(msg.err)
		}
		return q, nil

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.confirmingQuit {
		switch key {
		case "y", "Y":
			q.confirmingQuit = false
			q.Close()
			return q, q.opts.Restart
		case "n", "N", "esc":
			q.confirmingQuit = false
		}
		return q, nil
	}

	q.errMsg = ""
	switch key {
	case "esc":
		q.confirmingQuit = true
		return q, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(q.choice.Options) {
			q.choice.Cursor = idx
			q.selectOption(q.choice.Options[idx])
		}
		return q, nil
	case "enter", "space":
		q.selectOption(q.choice.Highlighted())
		return q, nil
	case "right", "n", "l":
		q.transition(q.sess.Advance())
		return q, nil
	case "left", "p", "h":
		q.transition(q.sess.Retreat())
		return q, nil
	case "f", "ctrl+s":
		return q.submit()
	case "s":
		return q, q.speak()
	}

	q.choice, _ = q.choice.Update(msg)
	return q, nil
}

func (q *QuizScreen) selectOption(option string) {
	if err := q.sess.SelectOption(q.sess.Current(), option); err != nil {
		q.errMsg = errorText(err, q.sess)
		return
	}
	q.choice.Chosen = option
}

func (q *QuizScreen) transition(err error) {
	if err != nil {
		q.errMsg = errorText(err, q.sess)
		return
	}
	q.cancelSpeech()
	q.syncChoice()
}

func (q *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	if err := q.sess.Submit(); err != nil {
		q.errMsg = errorText(err, q.sess)
		return q, nil
	}
	q.Close()
	if q.opts.Finish == nil {
		return q, nil
	}
	next, err := q.opts.Finish(q.sess)
	if err != nil {
		q.errMsg = err.Error()
		return q, nil
	}
	return q, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) speak() tea.Cmd {
	q.cancelSpeech()
	item := q.sess.Question(q.sess.Current())
	text := speech.QuestionText(item.Prompt, item.Options)

	ctx, cancel := context.WithCancel(context.Background())
	q.stopSpeech = cancel
	q.speaking = true
	q.notice = ""
	speaker := q.opts.Speaker
	return func() tea.Msg {
		defer cancel()
		return spokenMsg{err: speaker.Speak(ctx, text)}
	}
}

func (q *QuizScreen) cancelSpeech() {
	if q.stopSpeech != nil {
		q.stopSpeech()
		q.stopSpeech = nil
	}
	q.speaking = false
}

// syncChoice rebuilds the option selector for the current question.
func (q *QuizScreen) syncChoice() {
	i := q.sess.Current()
	q.choice = components.NewMultiChoice(q.sess.Question(i).Options, q.sess.Answer(i))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// errorText turns a refused transition into a hint for the user.
func errorText(err error, s *sess.Session) string {
	switch {
	case errors.Is(err, sess.ErrUnanswered):
		return "Select an answer before moving on."
	case errors.Is(err, sess.ErrLastQuestion):
		if s.CanSubmit() {
			return "This is the last question. Press F to finish."
		}
		return "This is the last question."
	case errors.Is(err, sess.ErrFirstQuestion):
		return "This is the first question."
	case errors.Is(err, sess.ErrIncomplete):
		return fmt.Sprintf("Answer every question before finishing (%d of %d answered).", s.Attempted(), s.Len())
	case errors.Is(err, sess.ErrUnknownOption):
		return "Pick one of the listed options."
	}
	return err.Error()
}

func speechNotice(err error) string {
	if errors.Is(err, speech.ErrUnavailable) {
		return "Text-to-speech is not available on this system."
	}
	return fmt.Sprintf("Could not read the question aloud: %v", err)
}
