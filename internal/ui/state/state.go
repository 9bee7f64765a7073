package state

import (
	"bookcat/internal/domain"
	"bookcat/internal/ui/forms"
	"bookcat/internal/ui/logic"
)

// Screen identifies one of the top-level tabs
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBooks
	ScreenUsers
	ScreenAbout
)

// Screens lists the tabs in display order
var Screens = []Screen{ScreenHome, ScreenBooks, ScreenUsers, ScreenAbout}

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenBooks:
		return "Books"
	case ScreenUsers:
		return "Users"
	case ScreenAbout:
		return "About"
	default:
		return "Unknown"
	}
}

// Next returns the tab to the right, wrapping around
func (s Screen) Next() Screen {
	return Screens[(int(s)+1)%len(Screens)]
}

// ListStatus tracks the lifecycle of a list load
type ListStatus int

const (
	StatusIdle ListStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// ConfirmTarget is the entity a pending delete applies to
type ConfirmTarget struct {
	Entity domain.EntityKind
	ID     int
	Label  string
}

// Options sizes the page contexts
type Options struct {
	PageSize      int
	Window        int
	FeaturedLimit int
}

// AppState contains all the application state
type AppState struct {
	Screen Screen

	// Home: featured books, always page 1
	Featured         []domain.Book
	FeaturedStatus   ListStatus
	FeaturedError    string
	FeaturedPage     *logic.PageState
	SelectedFeatured int

	// Books: one server page at a time
	Books        []domain.Book
	BooksStatus  ListStatus
	BooksError   string
	BooksPage    *logic.PageState
	SelectedBook int

	// Users: the full list, paged locally
	Users        []domain.User
	UsersStatus  ListStatus
	UsersError   string
	UsersPage    *logic.PageState
	SelectedUser int // index within the visible page

	// Overlays
	Detail  *domain.Book
	Form    *forms.Form
	Confirm *ConfirmTarget

	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
}

// NewAppState creates a new application state
func NewAppState(opts Options) *AppState {
	featured := opts.FeaturedLimit
	if featured <= 0 {
		featured = 5
	}
	return &AppState{
		Screen: ScreenHome,
		FeaturedPage: logic.NewPageState(logic.PageStateOptions{
			PageSize: featured,
			Window:   opts.Window,
		}),
		BooksPage: logic.NewPageState(logic.PageStateOptions{
			PageSize: opts.PageSize,
			Window:   opts.Window,
		}),
		UsersPage: logic.NewPageState(logic.PageStateOptions{
			PageSize: opts.PageSize,
			Window:   opts.Window,
		}),
	}
}

// SetUsers replaces the user list and re-derives its pagination
func (s *AppState) SetUsers(users []domain.User) {
	s.Users = users
	page := s.UsersPage.Page()
	s.UsersPage.ApplyPageResult(domain.PageMeta{
		Page:  page,
		Limit: s.UsersPage.PageSize(),
		Total: len(users),
	})
	s.clampSelection()
}

// VisibleUsers returns the users on the current local page
func (s *AppState) VisibleUsers() []domain.User {
	from, to := s.UsersPage.Bounds(len(s.Users))
	return s.Users[from:to]
}

// SelectedFeaturedItem returns the featured book under the cursor
func (s *AppState) SelectedFeaturedItem() (domain.Book, bool) {
	if s.SelectedFeatured < 0 || s.SelectedFeatured >= len(s.Featured) {
		return domain.Book{}, false
	}
	return s.Featured[s.SelectedFeatured], true
}

// SelectedBookItem returns the book under the cursor
func (s *AppState) SelectedBookItem() (domain.Book, bool) {
	if s.SelectedBook < 0 || s.SelectedBook >= len(s.Books) {
		return domain.Book{}, false
	}
	return s.Books[s.SelectedBook], true
}

// SelectedUserItem returns the user under the cursor
func (s *AppState) SelectedUserItem() (domain.User, bool) {
	visible := s.VisibleUsers()
	if s.SelectedUser < 0 || s.SelectedUser >= len(visible) {
		return domain.User{}, false
	}
	return visible[s.SelectedUser], true
}

// CurrentBook returns the book under the cursor on the home or books screen
func (s *AppState) CurrentBook() (domain.Book, bool) {
	switch s.Screen {
	case ScreenHome:
		return s.SelectedFeaturedItem()
	case ScreenBooks:
		return s.SelectedBookItem()
	}
	return domain.Book{}, false
}

// ItemCount returns the number of selectable rows on the current screen
func (s *AppState) ItemCount() int {
	switch s.Screen {
	case ScreenHome:
		return len(s.Featured)
	case ScreenBooks:
		return len(s.Books)
	case ScreenUsers:
		return len(s.VisibleUsers())
	}
	return 0
}

// MoveSelection moves the cursor of the current screen by delta, clamped
func (s *AppState) MoveSelection(delta int) {
	if cursor := s.cursor(); cursor != nil {
		*cursor = clamp(*cursor+delta, s.ItemCount())
	}
}

// SetSelection places the cursor of the current screen at index, clamped
func (s *AppState) SetSelection(index int) {
	if cursor := s.cursor(); cursor != nil {
		*cursor = clamp(index, s.ItemCount())
	}
}

func (s *AppState) cursor() *int {
	switch s.Screen {
	case ScreenHome:
		return &s.SelectedFeatured
	case ScreenBooks:
		return &s.SelectedBook
	case ScreenUsers:
		return &s.SelectedUser
	}
	return nil
}

func (s *AppState) clampSelection() {
	s.SelectedFeatured = clamp(s.SelectedFeatured, len(s.Featured))
	s.SelectedBook = clamp(s.SelectedBook, len(s.Books))
	s.SelectedUser = clamp(s.SelectedUser, len(s.VisibleUsers()))
}

// SetFeatured replaces the featured list
func (s *AppState) SetFeatured(books []domain.Book) {
	s.Featured = books
	s.clampSelection()
}

// SetBooks replaces the current books page
func (s *AppState) SetBooks(books []domain.Book) {
	s.Books = books
	s.clampSelection()
}

// ResetOverlays closes every popup, form and pending confirmation
func (s *AppState) ResetOverlays() {
	s.Detail = nil
	s.Form = nil
	s.Confirm = nil
	s.ShowHelp = false
	s.HelpScrollOffset = 0
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
