package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/domain"
	"bookcat/internal/ui/input/types"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func booksContext() *ModelContext {
	s := state.NewAppState(state.Options{PageSize: 10})
	s.Screen = state.ScreenBooks
	s.SetBooks([]domain.Book{{ID: 1, Title: "Dune"}})
	s.BooksPage.ApplyPageResult(domain.PageMeta{Page: 1, Limit: 10, Total: 30})
	return &ModelContext{State: s}
}

func TestSearchPrefillsActiveTerm(t *testing.T) {
	h := New()
	ctx := booksContext()
	ctx.State.BooksPage.SetFilters(logic.WithSearch("dune"))

	actions, cmd := h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "dune", h.TextInput().Value())
	assert.Equal(t, "Search: ", h.Prompt())
}

func TestTypingThenSubmitReturnsToNormal(t *testing.T) {
	h := New()
	ctx := booksContext()

	h.HandleKey(runes("/"), ctx)
	actions, _ := h.HandleKey(runes("x"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "x"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitTextAction{Text: "x", Mode: types.ModeSearch}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestEscCancelsTextMode(t *testing.T) {
	h := New()
	ctx := booksContext()

	h.HandleKey(runes("y"), ctx)
	assert.Equal(t, types.ModeYearFilter, h.CurrentMode())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestGoToPageIgnoresNonDigits(t *testing.T) {
	h := New()
	ctx := booksContext()

	h.HandleKey(runes(":"), ctx)
	require.Equal(t, types.ModeGoToPage, h.CurrentMode())

	h.HandleKey(runes("a"), ctx)
	h.HandleKey(runes("2"), ctx)
	assert.Equal(t, "2", h.TextInput().Value())
	assert.Equal(t, "1-3", h.TextInput().Placeholder)
}

func TestDeleteEntersConfirm(t *testing.T) {
	h := New()
	ctx := booksContext()

	actions, _ := h.HandleKey(runes("d"), ctx)
	assert.Equal(t, []types.Action{types.ConfirmDeleteAction{}}, actions)
	assert.Equal(t, types.ModeConfirm, h.CurrentMode())

	actions, _ = h.HandleKey(runes("j"), ctx)
	assert.Empty(t, actions, "other keys are swallowed")

	actions, _ = h.HandleKey(runes("y"), ctx)
	assert.Equal(t, []types.Action{types.DeleteAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestChangeModeOutsideKeyHandling(t *testing.T) {
	h := New()
	ctx := booksContext()

	h.ChangeMode(types.ModeForm, "", ctx)
	assert.Equal(t, types.ModeForm, h.CurrentMode())
	assert.Equal(t, "form", h.ModeName())

	actions, _ := h.HandleKey(runes("z"), ctx)
	require.Len(t, actions, 1)
	assert.IsType(t, types.FormInputAction{}, actions[0])

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestUnhandledNormalKeyProducesNothing(t *testing.T) {
	h := New()
	actions, cmd := h.HandleKey(runes("Z"), booksContext())
	assert.Nil(t, actions)
	assert.Nil(t, cmd)
}
