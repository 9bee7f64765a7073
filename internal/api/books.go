package api

import (
	"context"
	"fmt"

	"bookcat/internal/domain"
)

// ListBooks fetches one page of books. The query carries page, limit and filters.
func (c *Client) ListBooks(ctx context.Context, query Encoder) (domain.Page[domain.Book], error) {
	env, err := c.do(ctx, c.routes.ListBooks, query, nil)
	if err != nil {
		return domain.Page[domain.Book]{}, fmt.Errorf("list books: %w", err)
	}
	page, err := decodePage[domain.Book](env)
	if err != nil {
		return domain.Page[domain.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return page, nil
}

// FeaturedBooks fetches the first page of books with the given limit
func (c *Client) FeaturedBooks(ctx context.Context, limit int) (domain.Page[domain.Book], error) {
	query := RawQuery(fmt.Sprintf("page=1&limit=%d", limit))
	env, err := c.do(ctx, c.routes.FeaturedBooks, query, nil)
	if err != nil {
		return domain.Page[domain.Book]{}, fmt.Errorf("featured books: %w", err)
	}
	page, err := decodePage[domain.Book](env)
	if err != nil {
		return domain.Page[domain.Book]{}, fmt.Errorf("featured books: %w", err)
	}
	return page, nil
}

// GetBook fetches a single book
func (c *Client) GetBook(ctx context.Context, id int) (domain.Book, error) {
	env, err := c.do(ctx, c.routes.GetBook(id), nil, nil)
	if err != nil {
		return domain.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	var book domain.Book
	if err := decodeRequired(env, &book); err != nil {
		return domain.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

// CreateBook creates a book and returns it as stored by the backend.
// Backends that reply without data yield a zero Book.
func (c *Client) CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, error) {
	env, err := c.do(ctx, c.routes.CreateBook, nil, in)
	if err != nil {
		return domain.Book{}, fmt.Errorf("create book: %w", err)
	}
	var book domain.Book
	if err := decodeOptional(env, &book); err != nil {
		return domain.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// UpdateBook replaces the editable fields of a book
func (c *Client) UpdateBook(ctx context.Context, id int, in domain.BookInput) (domain.Book, error) {
	env, err := c.do(ctx, c.routes.UpdateBook(id), nil, in)
	if err != nil {
		return domain.Book{}, fmt.Errorf("update book %d: %w", id, err)
	}
	var book domain.Book
	if err := decodeOptional(env, &book); err != nil {
		return domain.Book{}, fmt.Errorf("update book %d: %w", id, err)
	}
	return book, nil
}

// DeleteBook removes a book. The response body is ignored.
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	if _, err := c.do(ctx, c.routes.DeleteBook(id), nil, nil); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
