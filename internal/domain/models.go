package domain

// Book is a catalog entry as returned by the backend
type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Description     string `json:"description,omitempty"`
	UserID          *int   `json:"user_id,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// BookInput is the payload for creating or updating a book
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Description     string `json:"description,omitempty"`
	UserID          *int   `json:"user_id,omitempty"`
}

// User is a catalog user as returned by the backend.
// The password is write-only and never decoded.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// FullName joins first and last name, skipping empty parts
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserInput is the payload for creating or updating a user.
// An empty password is omitted so updates keep the stored one.
type UserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// PageMeta is the pagination block the backend attaches to list responses
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of a list response. Meta is nil when the backend
// did not send pagination information.
type Page[T any] struct {
	Items []T
	Meta  *PageMeta
}

// EntityKind names the collection a change applies to
type EntityKind string

const (
	EntityBook EntityKind = "book"
	EntityUser EntityKind = "user"
)
