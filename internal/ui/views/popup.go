package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
	faded  lipgloss.Style
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
		faded:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// RenderPopupOverlay centers the popup over the main content. The content
// around the popup stays visible but greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	modalW := lipgloss.Width(styledPopup)
	modalH := len(popupLines)
	if width <= 0 {
		width = modalW
	}
	x := max(0, (width-modalW)/2)
	y := max(0, (height-modalH)/2)

	base := strings.Split(mainContent, "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		plain := ansi.Strip(line)
		if i < y || i >= y+modalH {
			out[i] = pr.fade(plain)
			continue
		}
		popupLine := popupLines[i-y]
		left := ansi.Truncate(plain, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(plain, x+lipgloss.Width(popupLine), "")
		out[i] = pr.fade(left) + popupLine + pr.fade(right)
	}
	return strings.Join(out, "\n")
}

func (pr *PopupRenderer) fade(s string) string {
	if s == "" {
		return s
	}
	return pr.faded.Render(s)
}
