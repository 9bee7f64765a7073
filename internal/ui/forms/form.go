package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/domain"
)

// Field keys
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldYear        = "publication_year"
	FieldISBN        = "isbn"
	FieldDescription = "description"
	FieldUserID      = "user_id"

	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// Field is one labelled input of a form
type Field struct {
	Key      string
	Label    string
	Input    textinput.Model
	Required bool
	Numeric  bool
	Locked   bool
}

// Form edits a book or a user. ID is 0 while creating.
type Form struct {
	Entity domain.EntityKind
	ID     int
	Title  string
	Error  string

	fields []Field
	focus  int
}

func newField(key, label string, required bool) Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	return Field{Key: key, Label: label, Input: ti, Required: required}
}

// NewBookForm builds the add form when book is nil and the edit form otherwise
func NewBookForm(book *domain.Book) *Form {
	f := &Form{Entity: domain.EntityBook, Title: "Add Book"}

	year := newField(FieldYear, "Publication year", false)
	year.Numeric = true
	year.Input.CharLimit = 4
	userID := newField(FieldUserID, "User ID", false)
	userID.Numeric = true

	f.fields = []Field{
		newField(FieldTitle, "Title", true),
		newField(FieldAuthor, "Author", true),
		year,
		newField(FieldISBN, "ISBN", false),
		newField(FieldDescription, "Description", false),
		userID,
	}

	if book != nil {
		f.ID = book.ID
		f.Title = "Edit Book"
		f.SetValue(FieldTitle, book.Title)
		f.SetValue(FieldAuthor, book.Author)
		f.SetValue(FieldYear, optionalInt(book.PublicationYear))
		f.SetValue(FieldISBN, book.ISBN)
		f.SetValue(FieldDescription, book.Description)
		f.SetValue(FieldUserID, optionalInt(book.UserID))
	}

	f.focusFirst()
	return f
}

// NewUserForm builds the add form when user is nil and the edit form otherwise.
// When editing, the username cannot change and the password may stay blank.
func NewUserForm(user *domain.User) *Form {
	f := &Form{Entity: domain.EntityUser, Title: "Add User"}

	password := newField(FieldPassword, "Password", true)
	password.Input.EchoMode = textinput.EchoPassword
	password.Input.EchoCharacter = '•'

	f.fields = []Field{
		newField(FieldUsername, "Username", true),
		newField(FieldEmail, "Email", true),
		password,
		newField(FieldFirstName, "First name", false),
		newField(FieldLastName, "Last name", false),
	}

	if user != nil {
		f.ID = user.ID
		f.Title = "Edit User"
		f.SetValue(FieldUsername, user.Username)
		f.SetValue(FieldEmail, user.Email)
		f.SetValue(FieldFirstName, user.FirstName)
		f.SetValue(FieldLastName, user.LastName)

		f.field(FieldUsername).Locked = true
		pw := f.field(FieldPassword)
		pw.Required = false
		pw.Input.Placeholder = "leave blank to keep current"
	}

	f.focusFirst()
	return f
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Editing reports whether the form updates an existing entity
func (f *Form) Editing() bool { return f.ID != 0 }

// Fields returns the form fields in display order
func (f *Form) Fields() []Field { return f.fields }

// Focused returns the index of the focused field
func (f *Form) Focused() int { return f.focus }

func (f *Form) field(key string) *Field {
	for i := range f.fields {
		if f.fields[i].Key == key {
			return &f.fields[i]
		}
	}
	return nil
}

// Value returns the trimmed text of a field
func (f *Form) Value(key string) string {
	if fd := f.field(key); fd != nil {
		return strings.TrimSpace(fd.Input.Value())
	}
	return ""
}

// SetValue replaces the text of a field
func (f *Form) SetValue(key, value string) {
	if fd := f.field(key); fd != nil {
		fd.Input.SetValue(value)
	}
}

func (f *Form) focusFirst() {
	f.focus = -1
	f.FocusNext()
}

// FocusNext moves focus forward, skipping locked fields and wrapping around
func (f *Form) FocusNext() tea.Cmd { return f.moveFocus(1) }

// FocusPrev moves focus backward, skipping locked fields and wrapping around
func (f *Form) FocusPrev() tea.Cmd { return f.moveFocus(-1) }

func (f *Form) moveFocus(delta int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	next := f.focus
	for range n {
		next = ((next+delta)%n + n) % n
		if !f.fields[next].Locked {
			break
		}
	}
	if f.focus >= 0 && f.focus < n {
		f.fields[f.focus].Input.Blur()
	}
	f.focus = next
	return f.fields[next].Input.Focus()
}

// Update forwards a message to the focused field
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) || f.fields[f.focus].Locked {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].Input, cmd = f.fields[f.focus].Input.Update(msg)
	return cmd
}

func (f *Form) intValue(key string) (*int, error) {
	raw := f.Value(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		label := key
		if fd := f.field(key); fd != nil {
			label = strings.ToLower(fd.Label)
		}
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, label)
	}
	return &v, nil
}

// BookInput reads the book payload. Empty numeric fields are omitted.
func (f *Form) BookInput() (domain.BookInput, error) {
	year, err := f.intValue(FieldYear)
	if err != nil {
		return domain.BookInput{}, err
	}
	userID, err := f.intValue(FieldUserID)
	if err != nil {
		return domain.BookInput{}, err
	}
	return domain.BookInput{
		Title:           f.Value(FieldTitle),
		Author:          f.Value(FieldAuthor),
		PublicationYear: year,
		ISBN:            f.Value(FieldISBN),
		Description:     f.Value(FieldDescription),
		UserID:          userID,
	}, nil
}

// UserInput reads the user payload. A blank password is left out so an
// update keeps the stored one.
func (f *Form) UserInput() domain.UserInput {
	return domain.UserInput{
		Username:  f.Value(FieldUsername),
		Email:     f.Value(FieldEmail),
		Password:  f.fieldRaw(FieldPassword),
		FirstName: f.Value(FieldFirstName),
		LastName:  f.Value(FieldLastName),
	}
}

// fieldRaw returns the untrimmed text, so passwords are sent as typed
func (f *Form) fieldRaw(key string) string {
	if fd := f.field(key); fd != nil {
		return fd.Input.Value()
	}
	return ""
}
