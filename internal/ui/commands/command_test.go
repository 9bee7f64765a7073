package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/api"
	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/state"
)

type fakeCatalog struct {
	queries  []string
	books    domain.Page[domain.Book]
	users    []domain.User
	err      error
	deleted  []int
	saved    []domain.BookInput
	savedIDs []int
}

func (f *fakeCatalog) ListBooks(_ context.Context, q api.Encoder) (domain.Page[domain.Book], error) {
	f.queries = append(f.queries, q.Encode())
	return f.books, f.err
}

func (f *fakeCatalog) FeaturedBooks(_ context.Context, limit int) (domain.Page[domain.Book], error) {
	return f.books, f.err
}

func (f *fakeCatalog) GetBook(_ context.Context, id int) (domain.Book, error) {
	return domain.Book{ID: id, Title: "Dune"}, f.err
}

func (f *fakeCatalog) SaveBook(_ context.Context, id int, in domain.BookInput) (domain.Book, error) {
	f.saved = append(f.saved, in)
	f.savedIDs = append(f.savedIDs, id)
	return domain.Book{ID: id, Title: in.Title}, f.err
}

func (f *fakeCatalog) DeleteBook(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeCatalog) ListUsers(context.Context) ([]domain.User, error) { return f.users, f.err }

func (f *fakeCatalog) GetUser(_ context.Context, id int) (domain.User, error) {
	return domain.User{ID: id, Username: "ada"}, f.err
}

func (f *fakeCatalog) SaveUser(_ context.Context, id int, in domain.UserInput) (domain.User, error) {
	return domain.User{ID: id, Username: in.Username}, f.err
}

func (f *fakeCatalog) DeleteUser(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func newExecutor(catalog Catalog, bus eventbus.EventBus) (*Executor, *state.AppState) {
	s := state.NewAppState(state.Options{PageSize: 10})
	return NewExecutor(context.Background(), s, bus, catalog), s
}

func TestLoadBooksUsesFiltersAndMarksLoading(t *testing.T) {
	catalog := &fakeCatalog{books: domain.Page[domain.Book]{Items: []domain.Book{{ID: 1}}}}
	e, s := newExecutor(catalog, nil)
	s.BooksPage.ApplyPageResult(domain.PageMeta{Page: 1, Limit: 10, Total: 45})
	s.BooksPage.SetFilters(logic.WithSearch("dune"))

	cmd := e.ExecuteLoadBooks(9)
	assert.Equal(t, state.StatusLoading, s.BooksStatus)

	msg, ok := cmd().(BooksLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 5, msg.Page, "page clamps to the known range")
	assert.Equal(t, 10, msg.Limit)
	assert.Equal(t, []string{"page=5&limit=10&searchTerm=dune"}, catalog.queries)
	assert.Equal(t, 1, s.BooksPage.Page(), "the page only moves when the result is applied")
}

func TestLoadFailureComesBackAsMessage(t *testing.T) {
	boom := errors.New("boom")
	e, _ := newExecutor(&fakeCatalog{err: boom}, nil)

	msg := e.ExecuteLoadUsers()().(UsersLoadedMsg)
	assert.ErrorIs(t, msg.Err, boom)

	featured := e.ExecuteLoadFeatured()().(FeaturedLoadedMsg)
	assert.Equal(t, 5, featured.Limit)
	assert.ErrorIs(t, featured.Err, boom)
}

func TestSaveBookReportsMutation(t *testing.T) {
	catalog := &fakeCatalog{}
	e, _ := newExecutor(catalog, nil)

	msg := e.ExecuteSaveBook(0, domain.BookInput{Title: "Dune", Author: "Herbert"})().(SavedMsg)
	assert.Equal(t, domain.MutationCreate, msg.Mutation)
	assert.Equal(t, "Dune", msg.Label)

	msg = e.ExecuteSaveBook(4, domain.BookInput{Title: "Dune", Author: "Herbert"})().(SavedMsg)
	assert.Equal(t, domain.MutationUpdate, msg.Mutation)
	assert.Equal(t, []int{0, 4}, catalog.savedIDs)
}

func TestDeleteDispatchesOnEntity(t *testing.T) {
	catalog := &fakeCatalog{}
	e, _ := newExecutor(catalog, nil)

	msg := e.ExecuteDelete(state.ConfirmTarget{Entity: domain.EntityUser, ID: 3, Label: "ada"})().(DeletedMsg)
	assert.Equal(t, domain.EntityUser, msg.Entity)
	assert.Equal(t, "ada", msg.Label)
	assert.Equal(t, []int{3}, catalog.deleted)
}

func TestEditLoadsEntity(t *testing.T) {
	e, _ := newExecutor(&fakeCatalog{}, nil)

	msg := e.ExecuteEdit(domain.EntityUser, 2)().(EditLoadedMsg)
	require.NotNil(t, msg.User)
	assert.Nil(t, msg.Book)
	assert.Equal(t, 2, msg.User.ID)

	msg = e.ExecuteEdit(domain.EntityBook, 7)().(EditLoadedMsg)
	require.NotNil(t, msg.Book)
	assert.Equal(t, "Dune", msg.Book.Title)
}

func TestSavePageSizePublishesConfigChange(t *testing.T) {
	bus := eventbus.New(zerolog.Nop())
	defer bus.Close()

	got := make(chan int, 1)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ConfigChangedEvent).PageSize
	})

	e, _ := newExecutor(&fakeCatalog{}, bus)
	assert.Nil(t, e.ExecuteSavePageSize(15))

	select {
	case size := <-got:
		assert.Equal(t, 15, size)
	case <-time.After(2 * time.Second):
		t.Fatal("ConfigChangedEvent not published")
	}
}
