package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/mcqgen/internal/session"
	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/layout"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

func (r *ResultsScreen) View(width, height int) string {
	w := layout.WrapWidth(width)
	sum := r.summary

	var b strings.Builder
	b.WriteString(r.renderScore(w))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Review"))
	b.WriteString("\n")
	b.WriteString(r.renderList(w))
	b.WriteString("\n")

	if len(sum.Items) > 0 {
		b.WriteString(r.renderDetail(sum.Items[r.cursor], w))
	}
	if r.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(r.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (r *ResultsScreen) renderScore(width int) string {
	sum := r.summary
	feedback := theme.Incorrect
	switch {
	case sum.Percentage >= 80:
		feedback = theme.Correct
	case sum.Percentage >= 60:
		feedback = theme.Selected
	}

	lines := []string{
		theme.Title.Render(fmt.Sprintf("You scored %d out of %d (%d%%)", sum.Score, sum.Total, sum.Percentage)),
		feedback.Render(sum.Feedback),
		theme.Muted.Render(fmt.Sprintf("Answered %d of %d  ·  Time %s",
			sum.Attempted, sum.Total, sess.FormatClock(sum.Duration))),
	}
	return theme.FocusedCard.Width(width).Render(strings.Join(lines, "\n"))
}

func (r *ResultsScreen) renderList(width int) string {
	lines := make([]string, 0, len(r.summary.Items))
	for i, item := range r.summary.Items {
		mark := theme.Correct.Render("✓")
		if !item.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		prefix := "  "
		style := theme.Unselected
		if i == r.cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		prompt := truncate(item.Prompt, width-10)
		lines = append(lines, prefix+mark+" "+style.Render(fmt.Sprintf("%d. %s", i+1, prompt)))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultsScreen) renderDetail(item sess.ReviewItem, width int) string {
	choice := components.NewMultiChoice(item.Options, item.Chosen)
	choice.Reveal = true
	choice.Correct = item.CorrectOption

	var b strings.Builder
	b.WriteString(theme.Label.Width(width - 4).Render(item.Prompt))
	b.WriteString("\n\n")
	b.WriteString(choice.View(width - 4))

	switch {
	case r.loading[item.Index]:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Asking for an explanation..."))
	case r.explanations[item.Index] != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(width - 4).Render(r.explanations[item.Index]))
	case r.opts.Explainer != nil:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press E to explain this answer."))
	}
	return theme.Card.Width(width).Render(b.String())
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
