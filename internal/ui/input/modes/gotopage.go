package modes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/ui/input/types"
)

// GoToPageMode reads a page number and only accepts digits
type GoToPageMode struct {
	TextInputMode
	totalPages int
}

func NewGoToPageMode(ti *textinput.Model) *GoToPageMode {
	return &GoToPageMode{
		TextInputMode: NewTextInputMode(types.ModeGoToPage, "go to page", "Go to page: ", ti),
	}
}

func (m *GoToPageMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	m.totalPages = ctx.TotalPages()
	if m.textInput != nil {
		m.textInput.Placeholder = "1-" + strconv.Itoa(m.totalPages)
		m.textInput.CharLimit = 6
	}
	return actions
}

func (m *GoToPageMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Placeholder = ""
		m.textInput.CharLimit = 0
	}
	return m.TextInputMode.Exit(ctx)
}

func (m *GoToPageMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return nil, true
			}
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
