package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"bookcat/internal/api"
	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
)

// Service fronts the API client for the TUI and the CLI.
// Successful writes publish CatalogChangedEvent. Failures are logged and
// returned to the caller, which decides how to surface them.
type Service struct {
	client *api.Client
	bus    eventbus.EventBus
	logger zerolog.Logger
}

// NewService creates a catalog service. bus may be nil.
func NewService(client *api.Client, bus eventbus.EventBus, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		bus:    bus,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// ListBooks fetches one page of books
func (s *Service) ListBooks(ctx context.Context, query api.Encoder) (domain.Page[domain.Book], error) {
	page, err := s.client.ListBooks(ctx, query)
	if err != nil {
		s.fail("Error loading books", err)
	}
	return page, err
}

// FeaturedBooks fetches the books shown on the home screen
func (s *Service) FeaturedBooks(ctx context.Context, limit int) (domain.Page[domain.Book], error) {
	page, err := s.client.FeaturedBooks(ctx, limit)
	if err != nil {
		s.fail("Error loading featured books", err)
	}
	return page, err
}

// GetBook fetches a single book
func (s *Service) GetBook(ctx context.Context, id int) (domain.Book, error) {
	book, err := s.client.GetBook(ctx, id)
	if err != nil {
		s.fail("Error loading book details", err)
	}
	return book, err
}

// SaveBook creates the book when id is 0 and updates it otherwise
func (s *Service) SaveBook(ctx context.Context, id int, in domain.BookInput) (domain.Book, error) {
	if err := in.Validate(); err != nil {
		return domain.Book{}, err
	}

	var (
		book     domain.Book
		err      error
		mutation = domain.MutationCreate
	)
	if id == 0 {
		book, err = s.client.CreateBook(ctx, in)
	} else {
		mutation = domain.MutationUpdate
		book, err = s.client.UpdateBook(ctx, id, in)
	}
	if err != nil {
		s.fail("Error saving book", err)
		return domain.Book{}, err
	}

	if book.ID == 0 {
		book.ID = id
	}
	s.changed(domain.EntityBook, mutation, book.ID)
	return book, nil
}

// DeleteBook removes a book
func (s *Service) DeleteBook(ctx context.Context, id int) error {
	if err := s.client.DeleteBook(ctx, id); err != nil {
		s.fail("Error deleting book", err)
		return err
	}
	s.changed(domain.EntityBook, domain.MutationDelete, id)
	return nil
}

// ListUsers fetches every user
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		s.fail("Error loading users", err)
	}
	return users, err
}

// GetUser fetches a single user
func (s *Service) GetUser(ctx context.Context, id int) (domain.User, error) {
	user, err := s.client.GetUser(ctx, id)
	if err != nil {
		s.fail("Error loading user details", err)
	}
	return user, err
}

// SaveUser creates the user when id is 0 and updates it otherwise.
// On update an empty password leaves the stored one untouched.
func (s *Service) SaveUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error) {
	if err := in.Validate(id == 0); err != nil {
		return domain.User{}, err
	}

	var (
		user     domain.User
		err      error
		mutation = domain.MutationCreate
	)
	if id == 0 {
		user, err = s.client.CreateUser(ctx, in)
	} else {
		mutation = domain.MutationUpdate
		user, err = s.client.UpdateUser(ctx, id, in)
	}
	if err != nil {
		s.fail("Error saving user", err)
		return domain.User{}, err
	}

	if user.ID == 0 {
		user.ID = id
	}
	s.changed(domain.EntityUser, mutation, user.ID)
	return user, nil
}

// DeleteUser removes a user
func (s *Service) DeleteUser(ctx context.Context, id int) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.fail("Error deleting user", err)
		return err
	}
	s.changed(domain.EntityUser, domain.MutationDelete, id)
	return nil
}

func (s *Service) changed(entity domain.EntityKind, mutation domain.Mutation, id int) {
	s.logger.Info().
		Str("entity", string(entity)).
		Str("mutation", string(mutation)).
		Int("id", id).
		Msg("catalog changed")
	if s.bus != nil {
		s.bus.Publish(eventbus.CatalogChangedEvent{Entity: entity, Mutation: mutation, ID: id})
	}
}

func (s *Service) fail(message string, err error) {
	s.logger.Error().Err(err).Msg(message)
}
