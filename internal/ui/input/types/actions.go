package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "top", "bottom"
}

func (a NavigateAction) Type() string { return "navigate" }

// PageTarget names a pagination move
type PageTarget string

const (
	PageNext  PageTarget = "next"
	PagePrev  PageTarget = "prev"
	PageFirst PageTarget = "first"
	PageLast  PageTarget = "last"
)

type PageAction struct {
	Target PageTarget
}

func (a PageAction) Type() string { return "page" }

type PageSizeAction struct {
	Delta int
}

func (a PageSizeAction) Type() string { return "page_size" }

// Screen actions
type SwitchScreenAction struct {
	Screen int
}

func (a SwitchScreenAction) Type() string { return "switch_screen" }

type NextScreenAction struct{}

func (a NextScreenAction) Type() string { return "next_screen" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Filter actions
type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Entity actions
type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type NewItemAction struct{}

func (a NewItemAction) Type() string { return "new_item" }

type EditItemAction struct{}

func (a EditItemAction) Type() string { return "edit_item" }

type ConfirmDeleteAction struct{}

func (a ConfirmDeleteAction) Type() string { return "confirm_delete" }

type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

type CancelConfirmAction struct{}

func (a CancelConfirmAction) Type() string { return "cancel_confirm" }

// Form actions
type FormFocusAction struct {
	Delta int
}

func (a FormFocusAction) Type() string { return "form_focus" }

type FormInputAction struct {
	Key tea.KeyMsg
}

func (a FormInputAction) Type() string { return "form_input" }

type SubmitFormAction struct{}

func (a SubmitFormAction) Type() string { return "submit_form" }

type CancelFormAction struct{}

func (a CancelFormAction) Type() string { return "cancel_form" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
