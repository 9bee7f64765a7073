package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"bookcat/internal/config"
	"bookcat/internal/ui/forms"
	"bookcat/internal/ui/input/types"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
	"bookcat/internal/ui/toast"
	"bookcat/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	config           *config.Config
	toasts           *toast.Stack
	width            int
	height           int
	help             help.Model
	helpContent      string
	spinner          string
	version          string
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, toasts *toast.Stack, textInput *textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		config:           cfg,
		toasts:           toasts,
		help:             help.New(),
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetHelpContent sets the text shown in the help popup
func (vm *ViewModel) SetHelpContent(content string) {
	vm.helpContent = content
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetVersion sets the version shown on the about screen
func (vm *ViewModel) SetVersion(version string) {
	vm.version = version
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode, prompt string) {
	vm.inputTransformer.SetMode(mode, prompt)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state
	vs := views.ViewState{
		Width:   vm.width,
		Height:  vm.height,
		Screen:  s.Screen,
		Spinner: vm.spinner,

		Featured:         s.Featured,
		FeaturedList:     views.ListView{Status: s.FeaturedStatus, Error: s.FeaturedError},
		SelectedFeatured: s.SelectedFeatured,

		Books:        s.Books,
		BooksList:    views.ListView{Status: s.BooksStatus, Error: s.BooksError, Pager: pager(s.BooksPage, "book", "books")},
		SelectedBook: s.SelectedBook,
		FilterText:   s.BooksPage.Filters().Describe(),

		Users:        s.VisibleUsers(),
		UsersList:    views.ListView{Status: s.UsersStatus, Error: s.UsersError, Pager: pager(s.UsersPage, "user", "users")},
		SelectedUser: s.SelectedUser,

		Detail:        s.Detail,
		Form:          formView(s.Form),
		ConfirmPrompt: vm.inputTransformer.GetConfirmText(s.Confirm),
		InputMode:     vm.inputTransformer.GetInputModeString(),
		TextInput:     vm.inputTransformer.GetInputText(),
		StatusMessage: s.StatusMessage,

		ShowHelp:         s.ShowHelp,
		HelpContent:      vm.helpContent,
		HelpScrollOffset: s.HelpScrollOffset,
		HelpModel:        vm.help,
		Keys:             views.KeysFor(s.Screen),

		PageSize: s.BooksPage.PageSize(),
		Version:  vm.version,
	}

	if vm.config != nil {
		vs.BaseURL = vm.config.API.BaseURL
	}

	if vm.toasts != nil {
		for _, t := range vm.toasts.Items() {
			vs.Toasts = append(vs.Toasts, views.ToastView{Message: t.Message, Severity: t.Severity.String()})
		}
	}

	return vs
}

func pager(p *logic.PageState, noun, nouns string) views.Pager {
	return views.Pager{
		Page:       p.Page(),
		TotalPages: p.TotalPages(),
		Total:      p.Total(),
		Range:      p.PageRange(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
		Noun:       noun,
		Nouns:      nouns,
	}
}

func formView(f *forms.Form) *views.FormView {
	if f == nil {
		return nil
	}
	fv := &views.FormView{Title: f.Title, Error: f.Error}
	for i, field := range f.Fields() {
		input := field.Input.View()
		if field.Locked {
			input = field.Input.Value()
		}
		fv.Fields = append(fv.Fields, views.FieldView{
			Label:    field.Label,
			Input:    input,
			Focused:  i == f.Focused(),
			Required: field.Required,
			Locked:   field.Locked,
		})
	}
	return fv
}
