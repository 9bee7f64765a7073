//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

type book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
}

type user struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// backend is a small in-memory catalog served over HTTP. It answers the
// list, detail and delete routes the UI uses.
type backend struct {
	*httptest.Server

	mu      sync.Mutex
	books   []book
	users   []user
	queries []string
}

// newBackend starts a backend seeded with books "Book 1" through "Book n",
// published from 1990 on
func newBackend(t *testing.T, n int) *backend {
	t.Helper()

	b := &backend{}
	for i := 1; i <= n; i++ {
		b.books = append(b.books, book{
			ID:              i,
			Title:           fmt.Sprintf("Book %d", i),
			Author:          fmt.Sprintf("Author %d", i),
			PublicationYear: 1989 + i,
		})
	}
	b.users = []user{
		{ID: 1, Username: "ada", Email: "ada@example.com", IsActive: true},
		{ID: 2, Username: "grace", Email: "grace@example.com"},
	}

	r := chi.NewRouter()
	r.Get("/books", b.listBooks)
	r.Get("/books/{id}", b.getBook)
	r.Delete("/books/{id}", b.deleteBook)
	r.Get("/users", b.listUsers)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

// Queries returns the raw query of every list request, oldest first
func (b *backend) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *backend) listBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	term := strings.ToLower(q.Get("searchTerm"))
	start, _ := strconv.Atoi(q.Get("startYear"))
	end, _ := strconv.Atoi(q.Get("endYear"))

	b.mu.Lock()
	b.queries = append(b.queries, r.URL.RawQuery)
	var matched []book
	for _, bk := range b.books {
		if term != "" && !strings.Contains(strings.ToLower(bk.Title), term) {
			continue
		}
		if start != 0 && bk.PublicationYear < start {
			continue
		}
		if end != 0 && bk.PublicationYear > end {
			continue
		}
		matched = append(matched, bk)
	}
	b.mu.Unlock()

	total := len(matched)
	from := min((page-1)*limit, total)
	to := min(from+limit, total)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": matched[from:to],
		"meta": map[string]int{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + limit - 1) / limit,
		},
	})
}

func (b *backend) getBook(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.books {
		if bk.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"data": bk})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Book not found"})
}

func (b *backend) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, bk := range b.books {
		if bk.ID == id {
			b.books = append(b.books[:i], b.books[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"message": "Book deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Book not found"})
}

func (b *backend) listUsers(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": b.users})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
