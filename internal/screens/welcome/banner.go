package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ ██████╗ ██████╗  ██████╗ ███████╗███╗   ██╗
 ████╗ ████║██╔════╝██╔═══██╗██╔════╝ ██╔════╝████╗  ██║
 ██╔████╔██║██║     ██║   ██║██║  ███╗█████╗  ██╔██╗ ██║
 ██║╚██╔╝██║██║     ██║▄▄ ██║██║   ██║██╔══╝  ██║╚██╗██║
 ██║ ╚═╝ ██║╚██████╗╚██████╔╝╚██████╔╝███████╗██║ ╚████║
 ╚═╝     ╚═╝ ╚═════╝ ╚══▀▀═╝  ╚═════╝ ╚══════╝╚═╝  ╚═══╝`

const bannerCompact = "M C Q G E N"

// RenderBanner returns the banner in the primary color, or a compact
// fallback below 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
