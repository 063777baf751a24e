package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// MultiChoice renders a question's options with a movable cursor. It does
// not decide what a selection means; the owning screen reads Cursor and
// records the answer.
type MultiChoice struct {
	Options []string

	// Cursor is the highlighted option.
	Cursor int

	// Chosen is the option currently recorded as the answer, or "".
	Chosen string

	// Reveal switches to review rendering: the correct option in green
	// and a wrong choice in red.
	Reveal  bool
	Correct string
}

// NewMultiChoice creates a selector positioned on the chosen option, or
// on the first one.
func NewMultiChoice(options []string, chosen string) MultiChoice {
	m := MultiChoice{Options: options, Chosen: chosen}
	for i, o := range options {
		if o == chosen {
			m.Cursor = i
			break
		}
	}
	return m
}

// Update moves the cursor with the arrow keys (or k/j).
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Reveal {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

// Highlighted returns the option under the cursor.
func (m MultiChoice) Highlighted() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return ""
	}
	return m.Options[m.Cursor]
}

// View renders one line per option, wrapped to width.
func (m MultiChoice) View(width int) string {
	lines := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		prefix := "  "
		marker := "○"
		if opt == m.Chosen {
			marker = "●"
		}
		if !m.Reveal && i == m.Cursor {
			prefix = "▸ "
		}

		style := theme.Unselected
		suffix := ""
		switch {
		case m.Reveal && opt == m.Correct:
			style = theme.Correct
			suffix = " ✓"
		case m.Reveal && opt == m.Chosen:
			style = theme.Incorrect
			suffix = " ✗"
		case m.Reveal:
			style = theme.Muted
		case opt == m.Chosen || i == m.Cursor:
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s %d) %s%s", prefix, marker, i+1, opt, suffix)
		lines = append(lines, style.Width(width).Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"))
}
