package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

func TestDerive_FilterSortPaginate(t *testing.T) {
	books := sampleBooks()

	res := Derive(books, Query{
		Filter: FilterSpec{Category: "Fantasy"},
		Sort:   SortSpec{Field: SortByPublishedYear, Direction: Descending},
	})

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, []string{"5", "1"}, ids(res.Items))
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 5, res.Collection)
	assert.Equal(t, 1, res.Count)
	assert.Empty(t, res.Message(FilterSpec{Category: "Fantasy"}))
}

func TestDerive_NoMatchesIsNotEmptyCollection(t *testing.T) {
	filter := FilterSpec{Term: "xyz"}
	res := Derive(sampleBooks(), Query{Filter: filter, Sort: DefaultSort})

	assert.Equal(t, StatusNoMatches, res.Status)
	assert.Empty(t, res.Items)
	assert.Equal(t, `No books found matching "xyz"`, res.Message(filter))
}

func TestDerive_CategoryWithoutBooks(t *testing.T) {
	books := []book.Book{{ID: "1", Genre: "History"}}
	filter := FilterSpec{Category: "Fantasy"}

	res := Derive(books, Query{Filter: filter})
	assert.Equal(t, StatusNoMatches, res.Status)
	assert.Empty(t, res.Items)
	assert.Equal(t, "No books match the selected category", res.Message(filter))
}

func TestDerive_EmptyCollection(t *testing.T) {
	res := Derive(nil, Query{Sort: DefaultSort})

	assert.Equal(t, StatusEmptyCollection, res.Status)
	assert.Equal(t, "No books found. Add some books to get started!", res.Message(FilterSpec{}))
	assert.Equal(t, `No books found matching "dune"`, res.Message(FilterSpec{Term: "dune"}))
	assert.False(t, res.ShowControls())
}

func TestDerive_PagesReconstructSortedSequence(t *testing.T) {
	books := numbered(19)
	// 打乱输入顺序
	books[0], books[18] = books[18], books[0]
	books[3], books[11] = books[11], books[3]

	sorted := Sort(books, DefaultSort)
	res := Derive(books, Query{Sort: DefaultSort})
	assert.Equal(t, 3, res.Count)

	var all []book.Book
	for page := 0; page < res.Count; page++ {
		all = append(all, Derive(books, Query{Sort: DefaultSort, Page: page}).Items...)
	}
	assert.Equal(t, ids(sorted), ids(all))
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	books := sampleBooks()
	_ = Derive(books, Query{Sort: SortSpec{Field: SortByTitle, Direction: Descending}})
	assert.Equal(t, sampleBooks(), books)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "empty_collection", StatusEmptyCollection.String())
	assert.Equal(t, "no_matches", StatusNoMatches.String())
}
