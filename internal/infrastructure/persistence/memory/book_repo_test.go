package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()

	year := 1965
	id, err := repo.Create(ctx, &book.Book{Title: "Dune", Author: "Frank Herbert", PublishedYear: &year})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 1965, got.Year())

	// 修改返回值不影响存储内容
	*got.PublishedYear = 2000
	again, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1965, again.Year())

	got.Title = "Dune Messiah"
	require.NoError(t, repo.Update(ctx, got))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Dune Messiah", all[0].Title)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), book.ErrBookNotFound)
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.ErrorIs(t, repo.Update(ctx, got), book.ErrBookNotFound)
}

func TestBookRepository_ListAllKeepsInsertionOrder(t *testing.T) {
	repo := NewBookRepository()
	ids := repo.Seed(
		book.Book{ID: "c", Title: "C"},
		book.Book{ID: "a", Title: "A"},
		book.Book{Title: "B"},
	)
	require.Len(t, ids, 3)
	assert.NotEmpty(t, ids[2])

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	titles := make([]string, len(all))
	for i, b := range all {
		titles[i] = b.Title
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)

	require.NoError(t, repo.Delete(context.Background(), "a"))
	all, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "C", all[0].Title)
	assert.Equal(t, "B", all[1].Title)
}

func TestBookRepository_Failure(t *testing.T) {
	repo := NewBookRepository()
	boom := errors.New("store offline")
	repo.SetFailure(boom)

	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, boom)

	repo.SetFailure(nil)
	_, err = repo.ListAll(context.Background())
	assert.NoError(t, err)
}

func TestBookRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBookRepository().ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
