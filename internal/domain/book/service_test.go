package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
)

func newService() (book.Service, *memory.BookRepository) {
	repo := memory.NewBookRepository()
	return book.NewService(repo), repo
}

func TestService_AddAndGet(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	created, err := svc.AddBook(ctx, book.Fields{
		Title:         "Neuromancer",
		Author:        "William Gibson",
		ISBN:          "9780441569595",
		PublishedYear: "1984",
		Genre:         "Science Fiction",
		Description:   "Cyberpunk.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, repo.Len())

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neuromancer", got.Title)
	assert.Equal(t, 1984, got.Year())
}

func TestService_AddInvalidDoesNotPersist(t *testing.T) {
	svc, repo := newService()

	_, err := svc.AddBook(context.Background(), book.Fields{Title: "No author"})
	assert.ErrorIs(t, err, book.ErrInvalidFields)
	assert.Equal(t, 0, repo.Len())
}

func TestService_MissingID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.GetBook(ctx, "")
	assert.ErrorIs(t, err, book.ErrMissingID)

	_, err = svc.EditBook(ctx, "  ", book.Fields{})
	assert.ErrorIs(t, err, book.ErrMissingID)

	assert.ErrorIs(t, svc.DeleteBook(ctx, ""), book.ErrMissingID)
	assert.Equal(t, "No book ID provided", book.ErrMissingID.Message)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.GetBook(ctx, "missing")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Equal(t, "Book not found", book.ErrBookNotFound.Message)

	assert.ErrorIs(t, svc.DeleteBook(ctx, "missing"), book.ErrBookNotFound)
}

func TestService_EditReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.AddBook(ctx, book.Fields{
		Title:         "Old",
		Author:        "Someone",
		ISBN:          "1",
		PublishedYear: "1999",
		Genre:         "History",
		ImageURL:      "https://example.com/a.png",
		Description:   "d",
	})
	require.NoError(t, err)

	edited, err := svc.EditBook(ctx, created.ID, book.Fields{
		Title:       "New",
		Author:      "Someone Else",
		ISBN:        "2",
		Description: "d2",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Nil(t, got.PublishedYear)
	assert.Equal(t, book.DefaultGenre, got.Genre)
	assert.Equal(t, book.PlaceholderImageURL, got.ImageURL)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()
	ids := repo.Seed(book.Book{Title: "A"}, book.Book{Title: "B"})

	require.NoError(t, svc.DeleteBook(ctx, ids[0]))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].Title)
}

func TestService_ReadFillsMissingDefaults(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()
	ids := repo.Seed(
		book.Book{Title: "Legacy"},
		book.Book{Title: "Kept", Genre: "Mystery", ImageURL: "https://example.com/c.png"},
	)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, book.DefaultGenre, all[0].Genre)
	assert.Equal(t, book.PlaceholderImageURL, all[0].ImageURL)
	assert.Equal(t, "Mystery", all[1].Genre)
	assert.Equal(t, "https://example.com/c.png", all[1].ImageURL)

	got, err := svc.GetBook(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, book.DefaultGenre, got.Genre)
	assert.Equal(t, book.PlaceholderImageURL, got.ImageURL)
}
