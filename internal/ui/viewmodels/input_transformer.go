package viewmodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"bookcat/internal/ui/input/types"
	"bookcat/internal/ui/state"
)

// InputTransformer handles input mode transformations
type InputTransformer struct {
	mode      types.Mode
	prompt    string
	textInput *textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput *textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      types.ModeNormal,
		textInput: textInput,
	}
}

// SetMode sets the current input mode and its prompt
func (it *InputTransformer) SetMode(mode types.Mode, prompt string) {
	it.mode = mode
	it.prompt = prompt
}

// GetInputText returns the prompt line for text input modes
func (it *InputTransformer) GetInputText() string {
	switch it.mode {
	case types.ModeSearch, types.ModeYearFilter, types.ModeGoToPage:
		if it.textInput == nil {
			return it.prompt
		}
		return it.prompt + it.textInput.View()
	default:
		return ""
	}
}

// GetConfirmText returns the delete question while confirming
func (it *InputTransformer) GetConfirmText(target *state.ConfirmTarget) string {
	if it.mode != types.ModeConfirm || target == nil {
		return ""
	}
	return fmt.Sprintf("Delete %q? (y/n)", target.Label)
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case types.ModeSearch:
		return "search"
	case types.ModeYearFilter:
		return "year-filter"
	case types.ModeGoToPage:
		return "go-to-page"
	case types.ModeConfirm:
		return "confirm"
	case types.ModeForm:
		return "form"
	default:
		return ""
	}
}
