package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"bookcat/internal/api"
	"bookcat/internal/config"
	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
	"bookcat/internal/ui/commands"
	"bookcat/internal/ui/forms"
	"bookcat/internal/ui/handlers"
	"bookcat/internal/ui/input"
	inputtypes "bookcat/internal/ui/input/types"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
	"bookcat/internal/ui/toast"
	"bookcat/internal/ui/viewmodels"
	"bookcat/internal/ui/views"
)

// Page size bounds for the +/- keys
const (
	minPageSize = 5
	maxPageSize = 100
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	logger zerolog.Logger

	// UI-specific state not in AppState
	width       int
	height      int
	toasts      *toast.Stack
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	renderer     *views.Renderer        // view renderer
	helpRenderer *HelpRenderer          // help text for the pager and popup
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	cmdExecutor  *commands.Executor     // command executor
	inputHandler *input.Handler         // input handling
	helpOps      *HelpOps               // help pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, catalog commands.Catalog, logger zerolog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	appState := state.NewAppState(state.Options{
		PageSize:      cfg.UI.PageSize,
		Window:        cfg.UI.PageWindow,
		FeaturedLimit: cfg.UI.FeaturedLimit,
	})

	ttl := toast.DefaultTTL
	if cfg.UI.ToastSeconds > 0 {
		ttl = time.Duration(cfg.UI.ToastSeconds) * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		logger:       logger,
		toasts:       toast.NewStack(ttl),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		helpOps:      NewHelpOps(nil),
	}

	m.cmdExecutor = commands.NewExecutor(context.Background(), appState, bus, catalog)
	m.eventHandler = handlers.NewEventHandler(appState, m.toasts, m, logger)

	m.viewModel = viewmodels.NewViewModel(appState, cfg, m.toasts, m.inputHandler.SharedTextInput())
	m.viewModel.SetHelpContent(m.helpRenderer.RenderHelpContent())
	m.viewModel.SetSpinner(m.spinner.View())

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetVersion sets the version shown on the about screen
func (m *Model) SetVersion(version string) {
	m.viewModel.SetVersion(version)
}

// State exposes the application state for the CLI and tests
func (m *Model) State() *state.AppState {
	return m.state
}

// Init loads every list and starts the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.cmdExecutor.ExecuteLoadFeatured(),
		m.cmdExecutor.ExecuteLoadBooks(1),
		m.cmdExecutor.ExecuteLoadUsers(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		// The shared text input needs its blink messages
		inputCmd := m.inputHandler.Update(msg)
		model, cmd := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetInputMode(m.inputHandler.CurrentMode(), m.inputHandler.Prompt())
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// handleKey routes a key to the open popup or to the input handler
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Help popup first
	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
			m.state.HelpScrollOffset = 0
		case "j", "down":
			m.state.HelpScrollOffset++
		case "k", "up":
			if m.state.HelpScrollOffset > 0 {
				m.state.HelpScrollOffset--
			}
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	// Book detail popup
	if m.state.Detail != nil && m.inputHandler.CurrentMode() == inputtypes.ModeNormal {
		book := *m.state.Detail
		switch msg.String() {
		case "esc", "q", "enter", "v":
			m.state.Detail = nil
		case "e":
			m.state.Detail = nil
			return m.cmdExecutor.ExecuteEdit(domain.EntityBook, book.ID)
		case "d", "x":
			m.state.Detail = nil
			m.state.Confirm = &state.ConfirmTarget{Entity: domain.EntityBook, ID: book.ID, Label: book.Title}
			m.inputHandler.ChangeMode(inputtypes.ModeConfirm, "", m.inputContext())
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}

	return tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{State: m.state}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.MoveSelection(-1)
		case "down":
			m.state.MoveSelection(1)
		case "top":
			m.state.SetSelection(0)
		case "bottom":
			m.state.SetSelection(m.state.ItemCount() - 1)
		}

	case inputtypes.PageAction:
		ps := m.currentPageState()
		if ps == nil {
			return nil
		}
		switch a.Target {
		case inputtypes.PageNext:
			return m.OnPageClick(ps.NextPage())
		case inputtypes.PagePrev:
			return m.OnPageClick(ps.PrevPage())
		case inputtypes.PageFirst:
			return m.OnPageClick(ps.FirstPage())
		case inputtypes.PageLast:
			return m.OnPageClick(ps.LastPage())
		}

	case inputtypes.PageSizeAction:
		return m.changePageSize(a.Delta)

	case inputtypes.SwitchScreenAction:
		if a.Screen >= 0 && a.Screen < len(state.Screens) {
			m.state.Screen = state.Screens[a.Screen]
		}

	case inputtypes.NextScreenAction:
		m.state.Screen = m.state.Screen.Next()

	case inputtypes.SubmitTextAction:
		text := strings.TrimSpace(a.Text)
		switch a.Mode {
		case inputtypes.ModeSearch:
			return m.OnFilterSubmit(logic.WithSearch(text))
		case inputtypes.ModeYearFilter:
			return m.onYearRangeSubmit(text)
		case inputtypes.ModeGoToPage:
			n, err := strconv.Atoi(text)
			if err != nil || n < 1 {
				return m.toasts.Error(fmt.Sprintf("Not a page number: %q", text))
			}
			return m.OnPageClick(n)
		}

	case inputtypes.ClearFiltersAction:
		m.state.BooksPage.ClearAllFilters()
		m.state.SelectedBook = 0
		return tea.Batch(m.cmdExecutor.ExecuteLoadBooks(1), m.setStatus("Filters cleared"))

	case inputtypes.OpenDetailAction:
		if book, ok := m.state.CurrentBook(); ok {
			m.state.Detail = &book
			return m.cmdExecutor.ExecuteBookDetail(book.ID)
		}

	case inputtypes.NewItemAction:
		if m.state.Screen == state.ScreenUsers {
			m.state.Form = forms.NewUserForm(nil)
		} else {
			m.state.Form = forms.NewBookForm(nil)
		}
		m.inputHandler.ChangeMode(inputtypes.ModeForm, "", m.inputContext())

	case inputtypes.EditItemAction:
		if m.state.Screen == state.ScreenUsers {
			if user, ok := m.state.SelectedUserItem(); ok {
				return m.cmdExecutor.ExecuteEdit(domain.EntityUser, user.ID)
			}
			return nil
		}
		if book, ok := m.state.CurrentBook(); ok {
			return m.cmdExecutor.ExecuteEdit(domain.EntityBook, book.ID)
		}

	case inputtypes.ConfirmDeleteAction:
		if target, ok := m.deleteTarget(); ok {
			m.state.Confirm = &target
		}

	case inputtypes.DeleteAction:
		if m.state.Confirm == nil {
			return nil
		}
		target := *m.state.Confirm
		m.state.Confirm = nil
		return m.cmdExecutor.ExecuteDelete(target)

	case inputtypes.CancelConfirmAction:
		m.state.Confirm = nil

	case inputtypes.FormFocusAction:
		if m.state.Form == nil {
			return nil
		}
		if a.Delta < 0 {
			return m.state.Form.FocusPrev()
		}
		return m.state.Form.FocusNext()

	case inputtypes.FormInputAction:
		if m.state.Form != nil {
			return m.state.Form.Update(a.Key)
		}

	case inputtypes.SubmitFormAction:
		return m.submitForm()

	case inputtypes.CancelFormAction:
		m.state.Form = nil

	case inputtypes.RefreshAction:
		switch m.state.Screen {
		case state.ScreenHome:
			return m.cmdExecutor.ExecuteLoadFeatured()
		case state.ScreenBooks:
			return m.cmdExecutor.ExecuteLoadBooks(m.state.BooksPage.Page())
		case state.ScreenUsers:
			return m.cmdExecutor.ExecuteLoadUsers()
		}

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.state.ShowHelp = !m.state.ShowHelp
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		saveConfig := !a.Force && m.config.UI.AutosaveOnExit
		return func() tea.Msg { return quitMsg{saveConfig: saveConfig} }
	}

	return nil
}

// OnFilterSubmit merges a filter update into the books list, returns it
// to page 1 and loads it. Searching from home jumps to the books screen.
func (m *Model) OnFilterSubmit(update logic.FilterState) tea.Cmd {
	m.state.BooksPage.SetFilters(update)
	m.state.SelectedBook = 0
	if m.state.Screen == state.ScreenHome {
		m.state.Screen = state.ScreenBooks
	}
	return m.cmdExecutor.ExecuteLoadBooks(1)
}

// onYearRangeSubmit replaces both year bounds. Empty input clears them.
func (m *Model) onYearRangeSubmit(text string) tea.Cmd {
	start, end, err := logic.ParseYearRange(text)
	if err != nil {
		return m.toasts.Error(err.Error())
	}
	m.state.BooksPage.ClearFilters(logic.FilterStartYear, logic.FilterEndYear)
	return m.OnFilterSubmit(logic.FilterState{StartYear: start, EndYear: end})
}

// OnPageClick moves the list on the current screen to page n. Books are
// requested from the server and the page only changes once the result
// arrives. Users are paged locally.
func (m *Model) OnPageClick(n int) tea.Cmd {
	switch m.state.Screen {
	case state.ScreenBooks:
		if n == m.state.BooksPage.Page() && m.state.BooksStatus == state.StatusLoaded {
			return nil
		}
		return m.cmdExecutor.ExecuteLoadBooks(n)
	case state.ScreenUsers:
		m.state.UsersPage.GoToPage(n)
		m.state.SelectedUser = 0
	}
	return nil
}

func (m *Model) currentPageState() *logic.PageState {
	switch m.state.Screen {
	case state.ScreenBooks:
		return m.state.BooksPage
	case state.ScreenUsers:
		return m.state.UsersPage
	}
	return nil
}

// changePageSize applies a new page size to both lists and persists it
func (m *Model) changePageSize(delta int) tea.Cmd {
	current := m.state.BooksPage.PageSize()
	size := min(max(current+delta, minPageSize), maxPageSize)
	if size == current {
		return nil
	}

	m.state.BooksPage.SetPageSize(size)
	m.state.UsersPage.SetPageSize(size)
	m.state.SetUsers(m.state.Users)
	m.state.SelectedBook = 0

	return tea.Batch(
		m.cmdExecutor.ExecuteSavePageSize(size),
		m.cmdExecutor.ExecuteLoadBooks(1),
		m.setStatus(fmt.Sprintf("Page size: %d", size)),
	)
}

// deleteTarget names the entity under the cursor
func (m *Model) deleteTarget() (state.ConfirmTarget, bool) {
	if m.state.Screen == state.ScreenUsers {
		user, ok := m.state.SelectedUserItem()
		if !ok {
			return state.ConfirmTarget{}, false
		}
		return state.ConfirmTarget{Entity: domain.EntityUser, ID: user.ID, Label: user.Username}, true
	}
	book, ok := m.state.CurrentBook()
	if !ok {
		return state.ConfirmTarget{}, false
	}
	return state.ConfirmTarget{Entity: domain.EntityBook, ID: book.ID, Label: book.Title}, true
}

// submitForm validates the open form and sends it
func (m *Model) submitForm() tea.Cmd {
	f := m.state.Form
	if f == nil {
		return nil
	}

	if f.Entity == domain.EntityUser {
		in := f.UserInput()
		if err := in.Validate(!f.Editing()); err != nil {
			f.Error = err.Error()
			return nil
		}
		f.Error = ""
		return m.cmdExecutor.ExecuteSaveUser(f.ID, in)
	}

	in, err := f.BookInput()
	if err == nil {
		err = in.Validate()
	}
	if err != nil {
		f.Error = strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
		return nil
	}
	f.Error = ""
	return m.cmdExecutor.ExecuteSaveBook(f.ID, in)
}

// ReloadBooks reloads the featured books and the current books page
func (m *Model) ReloadBooks() tea.Cmd {
	return tea.Batch(
		m.cmdExecutor.ExecuteLoadFeatured(),
		m.cmdExecutor.ExecuteLoadBooks(m.state.BooksPage.Page()),
	)
}

// ReloadUsers reloads the user list
func (m *Model) ReloadUsers() tea.Cmd {
	return m.cmdExecutor.ExecuteLoadUsers()
}

// setStatus shows a status message and clears it after a while
func (m *Model) setStatus(message string) tea.Cmd {
	m.state.StatusMessage = message
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case spinner.TickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.viewModel.SetSpinner(m.spinner.View())
		return m, cmd

	case toast.DismissMsg:
		m.toasts.Dismiss(msg.ID)
		return m, nil

	case commands.FeaturedLoadedMsg:
		return m, m.applyFeatured(msg)

	case commands.BooksLoadedMsg:
		return m, m.applyBooks(msg)

	case commands.UsersLoadedMsg:
		return m, m.applyUsers(msg)

	case commands.BookDetailMsg:
		if msg.Err != nil {
			return m, m.toasts.Error("Error loading book: " + api.UserMessage(msg.Err))
		}
		// Only refresh a popup that is still showing this book
		if m.state.Detail != nil && m.state.Detail.ID == msg.Book.ID {
			book := msg.Book
			m.state.Detail = &book
		}
		return m, nil

	case commands.EditLoadedMsg:
		if msg.Err != nil {
			return m, m.toasts.Error(fmt.Sprintf("Error loading %s: %s", msg.Entity, api.UserMessage(msg.Err)))
		}
		if msg.User != nil {
			m.state.Form = forms.NewUserForm(msg.User)
		} else {
			m.state.Form = forms.NewBookForm(msg.Book)
		}
		m.inputHandler.ChangeMode(inputtypes.ModeForm, "", m.inputContext())
		return m, nil

	case commands.SavedMsg:
		return m, m.applySaved(msg)

	case commands.DeletedMsg:
		return m, m.applyDeleted(msg)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the help popup
			m.logger.Warn().Err(msg.err).Msg("help pager failed")
			m.state.ShowHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Bubble Tea's RestoreTerminal() handles the actual resuming
		m.inPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	case quitMsg:
		if msg.saveConfig && m.bus != nil {
			m.bus.Publish(eventbus.ConfigChangedEvent{PageSize: m.state.BooksPage.PageSize()})
		}
		return m, tea.Quit

	default:
		return m, nil
	}
}

func (m *Model) applyFeatured(msg commands.FeaturedLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.state.FeaturedStatus = state.StatusFailed
		m.state.FeaturedError = api.UserMessage(msg.Err)
		return m.toasts.Error("Error loading featured books: " + m.state.FeaturedError)
	}
	m.state.FeaturedPage.ApplyPageResult(pageMeta(msg.Result.Meta, 1, msg.Limit, len(msg.Result.Items)))
	m.state.SetFeatured(msg.Result.Items)
	m.state.FeaturedStatus = state.StatusLoaded
	m.state.FeaturedError = ""
	return nil
}

// applyBooks adopts a books page. A failed load leaves the page window
// untouched so the previous page stays consistent with the list shown.
func (m *Model) applyBooks(msg commands.BooksLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.state.BooksStatus = state.StatusFailed
		m.state.BooksError = api.UserMessage(msg.Err)
		m.logger.Debug().Err(msg.Err).Int("page", msg.Page).Msg("books load failed")
		return m.toasts.Error("Error loading books: " + m.state.BooksError)
	}

	previous := m.state.BooksPage.Page()
	m.state.BooksPage.ApplyPageResult(pageMeta(msg.Result.Meta, msg.Page, msg.Limit, len(msg.Result.Items)))
	if m.state.BooksPage.Page() != previous {
		m.state.SelectedBook = 0
	}
	m.state.SetBooks(msg.Result.Items)
	m.state.BooksStatus = state.StatusLoaded
	m.state.BooksError = ""
	return nil
}

func (m *Model) applyUsers(msg commands.UsersLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.state.UsersStatus = state.StatusFailed
		m.state.UsersError = api.UserMessage(msg.Err)
		return m.toasts.Error("Error loading users: " + m.state.UsersError)
	}
	m.state.SetUsers(msg.Users)
	m.state.UsersStatus = state.StatusLoaded
	m.state.UsersError = ""
	return nil
}

func (m *Model) applySaved(msg commands.SavedMsg) tea.Cmd {
	if msg.Err != nil {
		text := api.UserMessage(msg.Err)
		if m.state.Form != nil {
			m.state.Form.Error = text
		}
		return m.toasts.Error(fmt.Sprintf("Error saving %s: %s", msg.Entity, text))
	}

	m.state.Form = nil
	m.inputHandler.Reset()

	verb := "added"
	if msg.Mutation == domain.MutationUpdate {
		verb = "updated"
	}
	cmds := []tea.Cmd{m.toasts.Success(fmt.Sprintf("%s %s", entityTitle(msg.Entity), verb))}
	// Without a bus there is no CatalogChanged event to trigger the reload
	if m.bus == nil {
		cmds = append(cmds, m.reload(msg.Entity))
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyDeleted(msg commands.DeletedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.toasts.Error(fmt.Sprintf("Error deleting %s: %s", msg.Entity, api.UserMessage(msg.Err)))
	}

	cmds := []tea.Cmd{m.toasts.Success(fmt.Sprintf("Deleted %q", msg.Label))}
	if m.bus == nil {
		cmds = append(cmds, m.reload(msg.Entity))
	}
	return tea.Batch(cmds...)
}

func (m *Model) reload(entity domain.EntityKind) tea.Cmd {
	if entity == domain.EntityUser {
		return m.ReloadUsers()
	}
	return m.ReloadBooks()
}

// pageMeta returns the server's pagination, or derives it from the
// request when the response carried none
func pageMeta(meta *domain.PageMeta, page, limit, count int) domain.PageMeta {
	if meta != nil {
		return *meta
	}
	return logic.SynthesizeMeta(page, limit, count)
}

func entityTitle(entity domain.EntityKind) string {
	switch entity {
	case domain.EntityUser:
		return "User"
	default:
		return "Book"
	}
}
