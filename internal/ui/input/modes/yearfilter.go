package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"bookcat/internal/ui/input/types"
)

// YearFilterMode reads a publication year range such as 1990-2000
type YearFilterMode struct {
	TextInputMode
}

func NewYearFilterMode(ti *textinput.Model) *YearFilterMode {
	return &YearFilterMode{
		TextInputMode: NewTextInputMode(types.ModeYearFilter, "years", "Years (1990-2000, 1990-, -2000): ", ti),
	}
}

// Enter sets a placeholder so an empty submit reads as "clear"
func (m *YearFilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.Placeholder = "empty clears"
	}
	return actions
}

func (m *YearFilterMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Placeholder = ""
	}
	return m.TextInputMode.Exit(ctx)
}
