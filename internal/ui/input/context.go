package input

import (
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

func (c *ModelContext) OnHome() bool  { return c.State.Screen == state.ScreenHome }
func (c *ModelContext) OnBooks() bool { return c.State.Screen == state.ScreenBooks }
func (c *ModelContext) OnUsers() bool { return c.State.Screen == state.ScreenUsers }

// HasItem reports whether an entity is under the cursor
func (c *ModelContext) HasItem() bool {
	switch c.State.Screen {
	case state.ScreenHome, state.ScreenBooks:
		_, ok := c.State.CurrentBook()
		return ok
	case state.ScreenUsers:
		_, ok := c.State.SelectedUserItem()
		return ok
	}
	return false
}

// HasFilters reports whether the books list is filtered
func (c *ModelContext) HasFilters() bool {
	return !c.State.BooksPage.Filters().IsEmpty()
}

// SearchTerm returns the active books search, used to prefill the prompt
func (c *ModelContext) SearchTerm() string {
	return c.State.BooksPage.Filters().Search()
}

// YearRange returns the active year filter in the form the prompt accepts
func (c *ModelContext) YearRange() string {
	return c.State.BooksPage.Filters().YearRangeText()
}

func (c *ModelContext) CurrentPage() int {
	if p := c.page(); p != nil {
		return p.Page()
	}
	return 1
}

func (c *ModelContext) TotalPages() int {
	if p := c.page(); p != nil {
		return p.TotalPages()
	}
	return 1
}

func (c *ModelContext) page() *logic.PageState {
	switch c.State.Screen {
	case state.ScreenBooks:
		return c.State.BooksPage
	case state.ScreenUsers:
		return c.State.UsersPage
	}
	return nil
}
