package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
	"bookcat/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, state *state.AppState, bus eventbus.EventBus, catalog Catalog) *Executor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			State:   state,
			Bus:     bus,
			Catalog: catalog,
		},
	}
}

// ExecuteLoadFeatured loads the home screen books
func (e *Executor) ExecuteLoadFeatured() tea.Cmd {
	return NewLoadFeaturedCommand(e.ctx).Execute()
}

// ExecuteLoadBooks loads the given page of books
func (e *Executor) ExecuteLoadBooks(page int) tea.Cmd {
	return NewLoadBooksCommand(e.ctx, page).Execute()
}

// ExecuteLoadUsers loads all users
func (e *Executor) ExecuteLoadUsers() tea.Cmd {
	return NewLoadUsersCommand(e.ctx).Execute()
}

// ExecuteBookDetail loads a book for the detail popup
func (e *Executor) ExecuteBookDetail(id int) tea.Cmd {
	return NewBookDetailCommand(e.ctx, id).Execute()
}

// ExecuteEdit loads an entity for its edit form
func (e *Executor) ExecuteEdit(entity domain.EntityKind, id int) tea.Cmd {
	return NewEditCommand(e.ctx, entity, id).Execute()
}

// ExecuteSaveBook creates (id 0) or updates a book
func (e *Executor) ExecuteSaveBook(id int, in domain.BookInput) tea.Cmd {
	return NewSaveBookCommand(e.ctx, id, in).Execute()
}

// ExecuteSaveUser creates (id 0) or updates a user
func (e *Executor) ExecuteSaveUser(id int, in domain.UserInput) tea.Cmd {
	return NewSaveUserCommand(e.ctx, id, in).Execute()
}

// ExecuteDelete removes a confirmed target
func (e *Executor) ExecuteDelete(target state.ConfirmTarget) tea.Cmd {
	return NewDeleteCommand(e.ctx, target).Execute()
}

// ExecuteSavePageSize publishes the page size for the config autosave
func (e *Executor) ExecuteSavePageSize(size int) tea.Cmd {
	return NewSavePageSizeCommand(e.ctx, size).Execute()
}
