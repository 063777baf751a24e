package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/layout"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.confirmingQuit {
		return renderQuitConfirm(width)
	}

	w := layout.WrapWidth(width)
	cur := q.sess.Current()
	item := q.sess.Question(cur)

	var b strings.Builder
	b.WriteString(components.QuestionProgress(cur, q.sess.Len(), w).View())
	b.WriteString("\n\n")

	b.WriteString(theme.FocusedCard.Width(w).Render(theme.Label.Render(item.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(q.choice.View(w))
	b.WriteString("\n\n")

	b.WriteString(theme.Muted.Render(fmt.Sprintf("Answered %d of %d", q.sess.Attempted(), q.sess.Len())))
	if q.speaking {
		b.WriteString(theme.Hint.Render("   Reading aloud..."))
	}
	b.WriteString("\n")

	if q.errMsg != "" {
		b.WriteString(theme.Incorrect.Render("⚠ " + q.errMsg))
		b.WriteString("\n")
	}
	if q.notice != "" {
		b.WriteString(theme.Hint.Render(q.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(q.navRow())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (q *QuizScreen) navRow() string {
	parts := []string{}
	if q.sess.CanRetreat() {
		parts = append(parts, components.NewButton("Previous", false, nil).WithKey("←").View())
	}
	if q.sess.Current() < q.sess.Len()-1 {
		next := components.NewButton("Next", q.sess.CanAdvance(), nil).WithKey("→")
		next.Disabled = !q.sess.CanAdvance()
		parts = append(parts, next.View())
	}
	finish := components.NewButton("Finish", q.sess.CanSubmit(), nil).WithKey("F")
	finish.Disabled = !q.sess.CanSubmit()
	parts = append(parts, finish.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, "  "))
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Inherit(theme.Label).Render("Quit this quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Inherit(theme.Muted).Render("Your answers and these questions will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.Correct).Render("[Y] Yes, start over"))
	b.WriteString("\n")
	b.WriteString(center.Inherit(theme.Selected).Render("[N] No, keep going"))
	return b.String()
}
