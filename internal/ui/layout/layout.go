package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// AppName is shown at the left of the header.
const AppName = "MCQ Generator"

const (
	MinWidth  = 60
	MinHeight = 20

	// HeaderHeight and FooterHeight include the rounded borders.
	HeaderHeight = 3
	FooterHeight = 3

	maxReadableWidth = 96
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		)))
}

var (
	barStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border)
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// RenderHeader draws the app name on the left, the screen title centred
// and status (model name, quiz timer, score) on the right. The title is
// dropped first when the bar is too narrow for all three.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	left := brandStyle.Render("  ▣ " + AppName)
	right := statusStyle.Render(status)
	center := titleStyle.Render(title)

	free := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if lipgloss.Width(center)+2 > free {
		center = ""
	}

	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return barStyle.Width(width).Render(line)
}

// RenderFooter lists key hints left to right, dropping trailing hints
// that would overflow the bar.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	inner := max(width-6, 0)

	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		need := lipgloss.Width(part)
		if i > 0 {
			need += len(sep)
		}
		if used+need > inner {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
		used += need
	}
	return barStyle.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, sizing the content area
// to whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// WrapWidth is the text width inside a content area of the given width,
// capped so question text stays readable on wide terminals.
func WrapWidth(width int) int {
	return min(max(width-6, 20), maxReadableWidth)
}
