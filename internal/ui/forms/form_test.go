package forms

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/domain"
)

func typeText(f *Form, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewBookFormPrefills(t *testing.T) {
	year, owner := 1965, 7
	f := NewBookForm(&domain.Book{ID: 3, Title: "Dune", Author: "Frank Herbert", PublicationYear: &year, UserID: &owner})

	assert.True(t, f.Editing())
	assert.Equal(t, "Edit Book", f.Title)
	assert.Equal(t, "Dune", f.Value(FieldTitle))
	assert.Equal(t, "1965", f.Value(FieldYear))
	assert.Equal(t, "7", f.Value(FieldUserID))
	assert.Equal(t, "", f.Value(FieldISBN))
	assert.Equal(t, 0, f.Focused())
}

func TestBookInputOmitsEmptyNumbers(t *testing.T) {
	f := NewBookForm(nil)
	typeText(f, "Dune")
	f.FocusNext()
	typeText(f, "Frank Herbert")

	in, err := f.BookInput()
	require.NoError(t, err)
	assert.Equal(t, "Dune", in.Title)
	assert.Equal(t, "Frank Herbert", in.Author)
	assert.Nil(t, in.PublicationYear)
	assert.Nil(t, in.UserID)
}

func TestBookInputRejectsNonNumericYear(t *testing.T) {
	f := NewBookForm(nil)
	f.SetValue(FieldYear, "19x5")

	_, err := f.BookInput()
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "publication year")
}

func TestBookInputParsesNumbers(t *testing.T) {
	f := NewBookForm(nil)
	f.SetValue(FieldYear, " 1999 ")
	f.SetValue(FieldUserID, "4")

	in, err := f.BookInput()
	require.NoError(t, err)
	require.NotNil(t, in.PublicationYear)
	assert.Equal(t, 1999, *in.PublicationYear)
	assert.Equal(t, 4, *in.UserID)
}

func TestEditUserFormLocksUsername(t *testing.T) {
	f := NewUserForm(&domain.User{ID: 2, Username: "ada", Email: "ada@example.com"})

	assert.Equal(t, 1, f.Focused(), "focus skips the locked username")
	f.FocusPrev()
	assert.Equal(t, len(f.Fields())-1, f.Focused(), "wraps past the locked field")

	pw := f.Fields()[2]
	assert.False(t, pw.Required)
	assert.Equal(t, "leave blank to keep current", pw.Input.Placeholder)

	in := f.UserInput()
	assert.Equal(t, "ada", in.Username)
	assert.Empty(t, in.Password)
}

func TestNewUserFormRequiresPassword(t *testing.T) {
	f := NewUserForm(nil)

	assert.False(t, f.Editing())
	assert.True(t, f.Fields()[2].Required)
	assert.Equal(t, 0, f.Focused())

	f.SetValue(FieldPassword, "secret")
	assert.Equal(t, "secret", f.UserInput().Password)
}

func TestFocusNextWraps(t *testing.T) {
	f := NewBookForm(nil)
	for range len(f.Fields()) {
		f.FocusNext()
	}
	assert.Equal(t, 0, f.Focused())
}
