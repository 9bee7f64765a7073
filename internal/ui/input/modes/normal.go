package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func onList(ctx types.Context) bool {
	return ctx.OnBooks() || ctx.OnUsers()
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()

	// Any key but g cancels a pending g prefix
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "top"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "bottom"}}, true

	case tea.KeyLeft, tea.KeyPgUp:
		if onList(ctx) {
			return []types.Action{types.PageAction{Target: types.PagePrev}}, true
		}
		return nil, false

	case tea.KeyRight, tea.KeyPgDown:
		if onList(ctx) {
			return []types.Action{types.PageAction{Target: types.PageNext}}, true
		}
		return nil, false

	case tea.KeyTab:
		return []types.Action{types.NextScreenAction{}}, true

	case tea.KeyEnter:
		if (ctx.OnHome() || ctx.OnBooks()) && ctx.HasItem() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		if ctx.OnUsers() && ctx.HasItem() {
			return []types.Action{types.EditItemAction{}}, true
		}
		return nil, false
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h", "[":
		if onList(ctx) {
			return []types.Action{types.PageAction{Target: types.PagePrev}}, true
		}
		return nil, false

	case "l", "]":
		if onList(ctx) {
			return []types.Action{types.PageAction{Target: types.PageNext}}, true
		}
		return nil, false

	case "1", "2", "3", "4":
		return []types.Action{types.SwitchScreenAction{Screen: int(key[0] - '1')}}, true

	case "/":
		if ctx.OnHome() || ctx.OnBooks() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true
		}
		return nil, false

	case "y":
		if ctx.OnBooks() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeYearFilter, Data: ctx.YearRange()}}, true
		}
		return nil, false

	case "c":
		if ctx.OnBooks() && ctx.HasFilters() {
			return []types.Action{types.ClearFiltersAction{}}, true
		}
		return nil, true

	case ":":
		if onList(ctx) && ctx.TotalPages() > 1 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeGoToPage}}, true
		}
		return nil, true

	case "+", "=":
		if onList(ctx) {
			return []types.Action{types.PageSizeAction{Delta: 5}}, true
		}
		return nil, false

	case "-", "_":
		if onList(ctx) {
			return []types.Action{types.PageSizeAction{Delta: -5}}, true
		}
		return nil, false

	case "a", "n":
		if onList(ctx) {
			return []types.Action{types.NewItemAction{}}, true
		}
		return nil, false

	case "e":
		if onList(ctx) && ctx.HasItem() {
			return []types.Action{types.EditItemAction{}}, true
		}
		return nil, false

	case "d", "x":
		if onList(ctx) && ctx.HasItem() {
			return []types.Action{
				types.ConfirmDeleteAction{},
				types.ChangeModeAction{Mode: types.ModeConfirm},
			}, true
		}
		return nil, false

	case "v":
		if (ctx.OnHome() || ctx.OnBooks()) && ctx.HasItem() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - first page on lists, top of the list elsewhere
			m.lastKeyWasG = false
			if onList(ctx) {
				return []types.Action{types.PageAction{Target: types.PageFirst}}, true
			}
			return []types.Action{types.NavigateAction{Direction: "top"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		if onList(ctx) {
			return []types.Action{types.PageAction{Target: types.PageLast}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "bottom"}}, true
	}

	return nil, false
}
