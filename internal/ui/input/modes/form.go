package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/ui/input/types"
)

// FormMode drives an open add/edit form. Keys that are not form controls
// are forwarded to the focused field.
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelFormAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "tab", "down":
		return []types.Action{types.FormFocusAction{Delta: 1}}, true
	case "shift+tab", "up":
		return []types.Action{types.FormFocusAction{Delta: -1}}, true
	case "enter", "ctrl+s":
		// The model leaves form mode once the save succeeds
		return []types.Action{types.SubmitFormAction{}}, true
	default:
		return []types.Action{types.FormInputAction{Key: msg}}, true
	}
}
