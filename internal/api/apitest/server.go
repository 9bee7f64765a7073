// Package apitest provides an in-memory catalog backend for tests.
// It serves both the REST and the legacy route styles.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bookcat/internal/domain"
)

// Request is a recorded call to the fake backend
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type override struct {
	status  int
	message string
	garbage bool
}

// Server is a fake catalog backend
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	books      map[int]domain.Book
	users      map[int]domain.User
	passwords  map[int]string
	nextBookID int
	nextUserID int
	requests   []Request
	overrides  []override
	omitMeta   bool
}

// NewServer starts an empty fake backend. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		books:      make(map[int]domain.Book),
		users:      make(map[int]domain.User),
		passwords:  make(map[int]string),
		nextBookID: 1,
		nextUserID: 1,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.applyOverrides)

	r.Route("/books", func(r chi.Router) {
		r.Get("/", s.listBooks)
		r.Post("/", s.createBook)
		r.Get("/all_books", s.listBooks)
		r.Post("/create_book", s.createBook)
		r.Put("/update/{id}", s.updateBook)
		r.Delete("/delete/{id}", s.deleteBook)
		r.Get("/{id}", s.getBook)
		r.Put("/{id}", s.updateBook)
		r.Delete("/{id}", s.deleteBook)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/all_users", s.listUsers)
		r.Get("/id/{id}", s.getUser)
		r.Post("/create_user", s.createUser)
		r.Put("/update/{id}", s.updateUser)
		r.Delete("/delete/{id}", s.deleteUser)
		r.Get("/{id}", s.getUser)
		r.Put("/{id}", s.updateUser)
		r.Delete("/{id}", s.deleteUser)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// AddBook stores a book and returns it with its assigned ID
func (s *Server) AddBook(b domain.Book) domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextBookID
	s.nextBookID++
	s.books[b.ID] = b
	return b
}

// SeedBooks adds n books titled "Book 1" through "Book n", published from 1990 on
func (s *Server) SeedBooks(n int) {
	for i := 1; i <= n; i++ {
		year := 1989 + i
		s.AddBook(domain.Book{
			Title:           fmt.Sprintf("Book %d", i),
			Author:          fmt.Sprintf("Author %d", i),
			PublicationYear: &year,
		})
	}
}

// AddUser stores a user and returns it with its assigned ID
func (s *Server) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = u
	return u
}

// Book returns a stored book
func (s *Server) Book(id int) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	return b, ok
}

// User returns a stored user
func (s *Server) User(id int) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Password returns the stored password of a user
func (s *Server) Password(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passwords[id]
}

// Requests returns every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// FailNext makes the next request fail with the given status and message.
// An empty message produces an error body without one.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(s.overrides, override{status: status, message: message})
}

// GarbageNext makes the next request answer 200 with a body that is not JSON
func (s *Server) GarbageNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(s.overrides, override{status: http.StatusOK, garbage: true})
}

// OmitMeta stops list responses from carrying pagination metadata
func (s *Server) OmitMeta(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitMeta = omit
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) applyOverrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var o *override
		if len(s.overrides) > 0 {
			o = &s.overrides[0]
			s.overrides = s.overrides[1:]
		}
		s.mu.Unlock()

		switch {
		case o == nil:
			next.ServeHTTP(w, r)
		case o.garbage:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(o.status)
			_, _ = w.Write([]byte("<html>not json</html>"))
		case o.message == "":
			writeJSON(w, o.status, map[string]any{})
		default:
			writeJSON(w, o.status, map[string]any{"message": o.message})
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", 10)
	term := strings.ToLower(r.URL.Query().Get("searchTerm"))
	start := intQuery(r, "startYear", 0)
	end := intQuery(r, "endYear", 0)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	matched := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		if term != "" && !strings.Contains(strings.ToLower(b.Title), term) && !strings.Contains(strings.ToLower(b.Author), term) {
			continue
		}
		year := 0
		if b.PublicationYear != nil {
			year = *b.PublicationYear
		}
		if start != 0 && year < start {
			continue
		}
		if end != 0 && year > end {
			continue
		}
		matched = append(matched, b)
	}
	omitMeta := s.omitMeta
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	from := (page - 1) * limit
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}

	resp := map[string]any{"data": matched[from:to]}
	if !omitMeta {
		totalPages := (total + limit - 1) / limit
		resp["meta"] = domain.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid book id")
		return
	}
	b, found := s.Book(id)
	if !found {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": b})
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var in domain.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Title == "" || in.Author == "" {
		writeMessage(w, http.StatusBadRequest, "Title and author are required")
		return
	}
	b := s.AddBook(bookFromInput(domain.Book{}, in))
	writeJSON(w, http.StatusCreated, map[string]any{"data": b, "message": "Book created"})
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid book id")
		return
	}
	var in domain.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	b, found := s.books[id]
	if found {
		b = bookFromInput(b, in)
		s.books[id] = b
	}
	s.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": b, "message": "Book updated"})
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid book id")
		return
	}
	s.mu.Lock()
	_, found := s.books[id]
	delete(s.books, id)
	s.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": nil, "message": "Book deleted"})
}

func bookFromInput(b domain.Book, in domain.BookInput) domain.Book {
	b.Title = in.Title
	b.Author = in.Author
	b.PublicationYear = in.PublicationYear
	b.ISBN = in.ISBN
	b.Description = in.Description
	b.UserID = in.UserID
	return b
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"data": users})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	u, found := s.User(id)
	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

// userPayload mirrors domain.UserInput but tells a missing password apart from an empty one
type userPayload struct {
	domain.UserInput
	Password *string `json:"password"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in userPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Username == "" || in.Email == "" || in.Password == nil || *in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	u := s.AddUser(userFromInput(domain.User{IsActive: true}, in.UserInput))
	s.mu.Lock()
	s.passwords[u.ID] = *in.Password
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"data": u, "message": "User created"})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var in userPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	u, found := s.users[id]
	if found {
		u = userFromInput(u, in.UserInput)
		s.users[id] = u
		if in.Password != nil {
			s.passwords[id] = *in.Password
		}
	}
	s.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u, "message": "User updated"})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	s.mu.Lock()
	_, found := s.users[id]
	delete(s.users, id)
	delete(s.passwords, id)
	s.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userFromInput(u domain.User, in domain.UserInput) domain.User {
	u.Username = in.Username
	u.Email = in.Email
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return u
}
