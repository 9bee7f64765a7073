package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/domain"
	"bookcat/internal/ui/state"
)

func year(y int) *int { return &y }

func booksState() ViewState {
	return ViewState{
		Width:  100,
		Height: 40,
		Screen: state.ScreenBooks,
		Books: []domain.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", PublicationYear: year(1965)},
			{ID: 2, Title: "Emma", Author: "Jane Austen"},
		},
		BooksList: ListView{
			Status: state.StatusLoaded,
			Pager: Pager{
				Page: 2, TotalPages: 5, Total: 45, Range: []int{1, 2, 3, 4, 5},
				HasPrev: true, HasNext: true, Noun: "book", Nouns: "books",
			},
		},
		SelectedBook: 1,
		Keys:         KeysFor(state.ScreenBooks),
	}
}

func TestRenderBooksScreen(t *testing.T) {
	out := ansi.Strip(NewRenderer().Render(booksState()))

	assert.Contains(t, out, "Dune by Frank Herbert (1965)")
	assert.Contains(t, out, "▸ Emma by Jane Austen")
	assert.Contains(t, out, "‹ Prev")
	assert.Contains(t, out, "Next ›")
	assert.Contains(t, out, "Page 2 of 5 · 45 books")
	assert.Contains(t, out, "Press ? for help")
}

func TestRenderListPlaceholders(t *testing.T) {
	r := NewRenderer()

	vs := booksState()
	vs.Books = nil
	vs.Spinner = "*"
	vs.BooksList = ListView{Status: state.StatusLoading}
	assert.Contains(t, ansi.Strip(r.Render(vs)), "* Loading books...")

	vs.BooksList = ListView{Status: state.StatusFailed, Error: "Network error"}
	out := ansi.Strip(r.Render(vs))
	assert.Contains(t, out, "Error loading books: Network error")
	assert.Contains(t, out, "Press r to retry")

	vs.BooksList = ListView{Status: state.StatusLoaded}
	vs.FilterText = `"zzz"`
	out = ansi.Strip(r.Render(vs))
	assert.Contains(t, out, "No books found.")
	assert.Contains(t, out, "Press c to clear filters")
	assert.Contains(t, out, `[Filter: "zzz"]`)
}

func TestPaginationDisablesBounds(t *testing.T) {
	styles := NewStyles()
	pr := NewPaginationRenderer(styles)

	first := Pager{Page: 1, TotalPages: 3, Total: 25, Range: []int{1, 2, 3}, HasNext: true, Noun: "book", Nouns: "books"}
	buttons := pr.Buttons(first)
	assert.Contains(t, buttons, styles.PageDisabled.Render("‹ Prev"))
	assert.Contains(t, buttons, styles.PageButton.Render("Next ›"))
	assert.Contains(t, buttons, styles.PageCurrent.Render("1"))

	windowed := Pager{Page: 6, TotalPages: 20, Range: []int{4, 5, 6, 7, 8}, HasPrev: true, HasNext: true}
	assert.Equal(t, 2, strings.Count(ansi.Strip(pr.Buttons(windowed)), "…"))

	single := Pager{Page: 1, TotalPages: 1, Total: 1, Noun: "book", Nouns: "books"}
	assert.Equal(t, "Page 1 of 1 · 1 book", ansi.Strip(pr.Render(single)))
}

func TestFormatCountUsesSeparators(t *testing.T) {
	assert.Equal(t, "1,204 books", FormatCount(1204, "book", "books"))
	assert.Equal(t, "N/A", FormatYear(nil))
	assert.Equal(t, "N/A", OrNA(""))
}

func TestDetailPopupFallsBackToNA(t *testing.T) {
	vs := booksState()
	vs.Detail = &domain.Book{ID: 2, Title: "Emma", Author: "Jane Austen"}

	out := ansi.Strip(NewRenderer().Render(vs))
	assert.Contains(t, out, "Emma")
	assert.Contains(t, out, "ISBN")
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "Press ? for help")
}

func TestUsersTable(t *testing.T) {
	vs := ViewState{
		Width:  100,
		Height: 30,
		Screen: state.ScreenUsers,
		Users: []domain.User{
			{ID: 1, Username: "ada", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", IsActive: true},
			{ID: 2, Username: "bob", Email: "bob@example.com"},
		},
		UsersList: ListView{Status: state.StatusLoaded},
	}

	out := ansi.Strip(NewRenderer().Render(vs))
	assert.Contains(t, out, "Username")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "bob@example.com")
}

func TestPopupOverlayKeepsBaseAroundModal(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	base := strings.Repeat(strings.Repeat("x", 20)+"\n", 5)

	out := ansi.Strip(pr.RenderPopupOverlay(strings.TrimSuffix(base, "\n"), "hi", 5, 20, NewStyles().Dim))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Repeat("x", 20), lines[0])
	assert.Equal(t, strings.Repeat("x", 9)+"hi"+strings.Repeat("x", 9), lines[2])
}

func TestToastsRenderNewestLast(t *testing.T) {
	r := NewRenderer()
	out := ansi.Strip(r.RenderToasts([]ToastView{
		{Message: "Book added", Severity: "success"},
		{Message: "Network error", Severity: "error"},
	}, 60))

	assert.Less(t, strings.Index(out, "Book added"), strings.Index(out, "Network error"))
}

func TestFormRendersRequiredAndLocked(t *testing.T) {
	out := ansi.Strip(NewRenderer().RenderForm(FormView{
		Title: "Edit User",
		Fields: []FieldView{
			{Label: "Username", Input: "ada", Locked: true, Required: true},
			{Label: "Email", Input: "ada@example.com", Focused: true, Required: true},
		},
		Error: "email is required",
	}))

	assert.Contains(t, out, "Edit User")
	assert.Contains(t, out, "ada (locked)")
	assert.Contains(t, out, "▸ Email*")
	assert.Contains(t, out, "email is required")
}
