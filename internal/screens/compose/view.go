package compose

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/layout"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

func (s *ComposeScreen) View(width, height int) string {
	w := layout.WrapWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render("Generate a multiple-choice quiz"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Paste study material below, or load a text or PDF file."))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.ErrorBox.Width(w).Render("⚠ " + s.errMsg))
		b.WriteString("\n")
	} else if s.info != "" {
		b.WriteString(theme.Hint.Render(s.info))
		b.WriteString("\n")
	}

	b.WriteString(s.fieldLabel(fieldText, "Source text"))
	b.WriteString("\n")
	b.WriteString(s.card(fieldText, w).Render(s.text.View()))
	b.WriteString("\n")

	countRow := s.fieldLabel(fieldCount, "Number of questions ") + s.count.View()
	fileRow := s.fieldLabel(fieldFile, "Load file ") + s.file.View()
	b.WriteString(countRow)
	b.WriteString("\n")
	b.WriteString(fileRow)
	b.WriteString("\n\n")

	if s.generating {
		b.WriteString(s.spinner.View())
		b.WriteString(theme.Body.Render(" Generating questions... "))
		b.WriteString(theme.Hint.Render("(Esc to cancel)"))
	} else {
		b.WriteString(s.generate.View())
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (s *ComposeScreen) fieldLabel(f field, label string) string {
	if s.focus == f && !s.generating {
		return theme.Selected.Render(label)
	}
	return theme.Label.Render(label)
}

func (s *ComposeScreen) card(f field, width int) lipgloss.Style {
	if s.focus == f && !s.generating {
		return theme.FocusedCard.Width(width)
	}
	return theme.Card.Width(width)
}
