package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/api"
	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
)

// Catalog is the part of the catalog service the UI drives
type Catalog interface {
	ListBooks(ctx context.Context, query api.Encoder) (domain.Page[domain.Book], error)
	FeaturedBooks(ctx context.Context, limit int) (domain.Page[domain.Book], error)
	GetBook(ctx context.Context, id int) (domain.Book, error)
	SaveBook(ctx context.Context, id int, in domain.BookInput) (domain.Book, error)
	DeleteBook(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int) (domain.User, error)
	SaveUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	State   *state.AppState
	Bus     eventbus.EventBus
	Catalog Catalog
}

// Messages returned by the commands once the request resolves

// FeaturedLoadedMsg carries the home screen books
type FeaturedLoadedMsg struct {
	Limit  int
	Result domain.Page[domain.Book]
	Err    error
}

// BooksLoadedMsg carries one page of books. Page and Limit echo the request.
type BooksLoadedMsg struct {
	Page   int
	Limit  int
	Result domain.Page[domain.Book]
	Err    error
}

// UsersLoadedMsg carries the full user list
type UsersLoadedMsg struct {
	Users []domain.User
	Err   error
}

// BookDetailMsg carries a book for the detail popup
type BookDetailMsg struct {
	Book domain.Book
	Err  error
}

// EditLoadedMsg carries the entity an edit form is opened for
type EditLoadedMsg struct {
	Entity domain.EntityKind
	Book   *domain.Book
	User   *domain.User
	Err    error
}

// SavedMsg reports the outcome of a create or update
type SavedMsg struct {
	Entity   domain.EntityKind
	Mutation domain.Mutation
	Label    string
	Err      error
}

// DeletedMsg reports the outcome of a delete
type DeletedMsg struct {
	Entity domain.EntityKind
	ID     int
	Label  string
	Err    error
}

// LoadFeaturedCommand fetches the featured books
type LoadFeaturedCommand struct {
	ctx *CommandContext
}

func NewLoadFeaturedCommand(ctx *CommandContext) *LoadFeaturedCommand {
	return &LoadFeaturedCommand{ctx: ctx}
}

func (c *LoadFeaturedCommand) Execute() tea.Cmd {
	s := c.ctx.State
	s.FeaturedStatus = state.StatusLoading
	limit := s.FeaturedPage.PageSize()
	catalog, base := c.ctx.Catalog, c.ctx.Ctx
	return func() tea.Msg {
		page, err := catalog.FeaturedBooks(base, limit)
		return FeaturedLoadedMsg{Limit: limit, Result: page, Err: err}
	}
}

// LoadBooksCommand fetches one page of books with the active filters
type LoadBooksCommand struct {
	ctx   *CommandContext
	query logic.Query
	page  int
}

// NewLoadBooksCommand requests page, clamped into the known range
func NewLoadBooksCommand(ctx *CommandContext, page int) *LoadBooksCommand {
	ps := ctx.State.BooksPage
	return &LoadBooksCommand{
		ctx:   ctx,
		query: ps.QueryFor(page),
		page:  ps.ClampPage(page),
	}
}

func (c *LoadBooksCommand) Execute() tea.Cmd {
	s := c.ctx.State
	s.BooksStatus = state.StatusLoading
	limit := s.BooksPage.PageSize()
	query, page := c.query, c.page
	catalog, base := c.ctx.Catalog, c.ctx.Ctx
	return func() tea.Msg {
		result, err := catalog.ListBooks(base, query)
		return BooksLoadedMsg{Page: page, Limit: limit, Result: result, Err: err}
	}
}

// LoadUsersCommand fetches every user
type LoadUsersCommand struct {
	ctx *CommandContext
}

func NewLoadUsersCommand(ctx *CommandContext) *LoadUsersCommand {
	return &LoadUsersCommand{ctx: ctx}
}

func (c *LoadUsersCommand) Execute() tea.Cmd {
	c.ctx.State.UsersStatus = state.StatusLoading
	catalog, base := c.ctx.Catalog, c.ctx.Ctx
	return func() tea.Msg {
		users, err := catalog.ListUsers(base)
		return UsersLoadedMsg{Users: users, Err: err}
	}
}

// BookDetailCommand fetches a book for the detail popup
type BookDetailCommand struct {
	ctx *CommandContext
	id  int
}

func NewBookDetailCommand(ctx *CommandContext, id int) *BookDetailCommand {
	return &BookDetailCommand{ctx: ctx, id: id}
}

func (c *BookDetailCommand) Execute() tea.Cmd {
	catalog, base, id := c.ctx.Catalog, c.ctx.Ctx, c.id
	return func() tea.Msg {
		book, err := catalog.GetBook(base, id)
		return BookDetailMsg{Book: book, Err: err}
	}
}

// EditCommand fetches the latest copy of an entity before editing it
type EditCommand struct {
	ctx    *CommandContext
	entity domain.EntityKind
	id     int
}

func NewEditCommand(ctx *CommandContext, entity domain.EntityKind, id int) *EditCommand {
	return &EditCommand{ctx: ctx, entity: entity, id: id}
}

func (c *EditCommand) Execute() tea.Cmd {
	catalog, base, entity, id := c.ctx.Catalog, c.ctx.Ctx, c.entity, c.id
	return func() tea.Msg {
		if entity == domain.EntityUser {
			user, err := catalog.GetUser(base, id)
			if err != nil {
				return EditLoadedMsg{Entity: entity, Err: err}
			}
			return EditLoadedMsg{Entity: entity, User: &user}
		}
		book, err := catalog.GetBook(base, id)
		if err != nil {
			return EditLoadedMsg{Entity: entity, Err: err}
		}
		return EditLoadedMsg{Entity: entity, Book: &book}
	}
}

// SaveBookCommand creates or updates a book
type SaveBookCommand struct {
	ctx *CommandContext
	id  int
	in  domain.BookInput
}

func NewSaveBookCommand(ctx *CommandContext, id int, in domain.BookInput) *SaveBookCommand {
	return &SaveBookCommand{ctx: ctx, id: id, in: in}
}

func (c *SaveBookCommand) Execute() tea.Cmd {
	catalog, base, id, in := c.ctx.Catalog, c.ctx.Ctx, c.id, c.in
	return func() tea.Msg {
		mutation := domain.MutationCreate
		if id != 0 {
			mutation = domain.MutationUpdate
		}
		_, err := catalog.SaveBook(base, id, in)
		return SavedMsg{Entity: domain.EntityBook, Mutation: mutation, Label: in.Title, Err: err}
	}
}

// SaveUserCommand creates or updates a user
type SaveUserCommand struct {
	ctx *CommandContext
	id  int
	in  domain.UserInput
}

func NewSaveUserCommand(ctx *CommandContext, id int, in domain.UserInput) *SaveUserCommand {
	return &SaveUserCommand{ctx: ctx, id: id, in: in}
}

func (c *SaveUserCommand) Execute() tea.Cmd {
	catalog, base, id, in := c.ctx.Catalog, c.ctx.Ctx, c.id, c.in
	return func() tea.Msg {
		mutation := domain.MutationCreate
		if id != 0 {
			mutation = domain.MutationUpdate
		}
		_, err := catalog.SaveUser(base, id, in)
		return SavedMsg{Entity: domain.EntityUser, Mutation: mutation, Label: in.Username, Err: err}
	}
}

// DeleteCommand removes the entity named by a confirmed target
type DeleteCommand struct {
	ctx    *CommandContext
	target state.ConfirmTarget
}

func NewDeleteCommand(ctx *CommandContext, target state.ConfirmTarget) *DeleteCommand {
	return &DeleteCommand{ctx: ctx, target: target}
}

func (c *DeleteCommand) Execute() tea.Cmd {
	catalog, base, target := c.ctx.Catalog, c.ctx.Ctx, c.target
	return func() tea.Msg {
		var err error
		if target.Entity == domain.EntityUser {
			err = catalog.DeleteUser(base, target.ID)
		} else {
			err = catalog.DeleteBook(base, target.ID)
		}
		return DeletedMsg{Entity: target.Entity, ID: target.ID, Label: target.Label, Err: err}
	}
}

// SavePageSizeCommand asks for the new page size to be persisted
type SavePageSizeCommand struct {
	ctx  *CommandContext
	size int
}

func NewSavePageSizeCommand(ctx *CommandContext, size int) *SavePageSizeCommand {
	return &SavePageSizeCommand{ctx: ctx, size: size}
}

func (c *SavePageSizeCommand) Execute() tea.Cmd {
	if c.ctx.Bus != nil && c.size > 0 {
		c.ctx.Bus.Publish(eventbus.ConfigChangedEvent{PageSize: c.size})
	}
	return nil
}
