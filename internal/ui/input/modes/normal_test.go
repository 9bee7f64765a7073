package modes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"bookcat/internal/ui/input/types"
)

type fakeContext struct {
	screen     string
	hasItem    bool
	hasFilters bool
	search     string
	years      string
	page       int
	totalPages int
}

func (c fakeContext) OnHome() bool       { return c.screen == "home" }
func (c fakeContext) OnBooks() bool      { return c.screen == "books" }
func (c fakeContext) OnUsers() bool      { return c.screen == "users" }
func (c fakeContext) HasItem() bool      { return c.hasItem }
func (c fakeContext) HasFilters() bool   { return c.hasFilters }
func (c fakeContext) SearchTerm() string { return c.search }
func (c fakeContext) YearRange() string  { return c.years }
func (c fakeContext) CurrentPage() int   { return c.page }
func (c fakeContext) TotalPages() int    { return c.totalPages }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModePagination(t *testing.T) {
	m := NewNormalMode()
	books := fakeContext{screen: "books", hasItem: true, totalPages: 3}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"l next", key("l"), types.PageAction{Target: types.PageNext}},
		{"] next", key("]"), types.PageAction{Target: types.PageNext}},
		{"right next", tea.KeyMsg{Type: tea.KeyRight}, types.PageAction{Target: types.PageNext}},
		{"h prev", key("h"), types.PageAction{Target: types.PagePrev}},
		{"left prev", tea.KeyMsg{Type: tea.KeyLeft}, types.PageAction{Target: types.PagePrev}},
		{"G last", key("G"), types.PageAction{Target: types.PageLast}},
		{"+ grows page", key("+"), types.PageSizeAction{Delta: 5}},
		{"- shrinks page", key("-"), types.PageSizeAction{Delta: -5}},
		{"j down", key("j"), types.NavigateAction{Direction: "down"}},
		{"enter detail", tea.KeyMsg{Type: tea.KeyEnter}, types.OpenDetailAction{}},
		{"a new", key("a"), types.NewItemAction{}},
		{"e edit", key("e"), types.EditItemAction{}},
		{"2 switches", key("2"), types.SwitchScreenAction{Screen: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, consumed := m.HandleKey(tt.msg, books)
			assert.True(t, consumed)
			assert.Equal(t, []types.Action{tt.want}, actions)
		})
	}
}

func TestNormalModeDoubleG(t *testing.T) {
	m := NewNormalMode()
	books := fakeContext{screen: "books"}

	actions, consumed := m.HandleKey(key("g"), books)
	assert.True(t, consumed)
	assert.Empty(t, actions)

	actions, _ = m.HandleKey(key("g"), books)
	assert.Equal(t, []types.Action{types.PageAction{Target: types.PageFirst}}, actions)

	// another key between the two g presses breaks the sequence
	m.HandleKey(key("g"), books)
	m.HandleKey(key("j"), books)
	actions, _ = m.HandleKey(key("g"), books)
	assert.Empty(t, actions)
}

func TestNormalModeFiltersOnlyOnBooks(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(key("/"), fakeContext{screen: "books", search: "dune"})
	assert.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: "dune"}}, actions)

	actions, _ = m.HandleKey(key("/"), fakeContext{screen: "home"})
	assert.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ""}}, actions)

	actions, consumed := m.HandleKey(key("/"), fakeContext{screen: "users"})
	assert.False(t, consumed)
	assert.Nil(t, actions)

	actions, _ = m.HandleKey(key("y"), fakeContext{screen: "books", years: "1990-"})
	assert.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeYearFilter, Data: "1990-"}}, actions)

	actions, _ = m.HandleKey(key("c"), fakeContext{screen: "books", hasFilters: true})
	assert.Equal(t, []types.Action{types.ClearFiltersAction{}}, actions)

	actions, _ = m.HandleKey(key("c"), fakeContext{screen: "books"})
	assert.Nil(t, actions)
}

func TestNormalModeNeedsItemForEntityActions(t *testing.T) {
	m := NewNormalMode()
	empty := fakeContext{screen: "books"}

	for _, k := range []string{"e", "d", "v"} {
		actions, _ := m.HandleKey(key(k), empty)
		assert.Nil(t, actions, k)
	}

	actions, _ := m.HandleKey(key("d"), fakeContext{screen: "users", hasItem: true})
	assert.Equal(t, []types.Action{
		types.ConfirmDeleteAction{},
		types.ChangeModeAction{Mode: types.ModeConfirm},
	}, actions)
}

func TestNormalModeGoToPageNeedsPages(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(key(":"), fakeContext{screen: "books", totalPages: 1})
	assert.Nil(t, actions)

	actions, _ = m.HandleKey(key(":"), fakeContext{screen: "users", totalPages: 4})
	assert.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeGoToPage}}, actions)
}

func TestFormModeForwardsKeys(t *testing.T) {
	m := NewFormMode()
	ctx := fakeContext{}

	actions, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.FormFocusAction{Delta: 1}}, actions)

	actions, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, ctx)
	assert.Equal(t, []types.Action{types.FormFocusAction{Delta: -1}}, actions)

	actions, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitFormAction{}}, actions)

	msg := key("q")
	actions, consumed := m.HandleKey(msg, ctx)
	assert.True(t, consumed)
	assert.Equal(t, []types.Action{types.FormInputAction{Key: msg}}, actions)
}
