package listing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

func TestSort_TitleAscDesc(t *testing.T) {
	books := []book.Book{{Title: "B", Author: "X"}, {Title: "A", Author: "Y"}}

	assert.Equal(t, []string{"A", "B"}, titles(Sort(books, SortSpec{Field: SortByTitle, Direction: Ascending})))
	assert.Equal(t, []string{"B", "A"}, titles(Sort(books, SortSpec{Field: SortByTitle, Direction: Descending})))
}

func TestSort_CaseSensitive(t *testing.T) {
	books := sampleBooks()
	got := titles(Sort(books, SortSpec{Field: SortByTitle, Direction: Ascending}))

	// 大写字母的字节序小于小写字母
	want := []string{"Dune", "Gone Girl", "Sapiens", "The Hobbit", "the silmarillion"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_PublishedYearNumeric(t *testing.T) {
	books := []book.Book{
		{ID: "a", PublishedYear: year(2001)},
		{ID: "b"}, // 未填写按0
		{ID: "c", PublishedYear: year(999)},
		{ID: "d", PublishedYear: year(10000)},
	}

	asc := Sort(books, SortSpec{Field: SortByPublishedYear, Direction: Ascending})
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(asc))

	desc := Sort(books, SortSpec{Field: SortByPublishedYear, Direction: Descending})
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(desc))
}

func TestSort_StableTies(t *testing.T) {
	books := []book.Book{
		{ID: "1", Genre: "Fantasy"},
		{ID: "2", Genre: "Drama"},
		{ID: "3", Genre: "Fantasy"},
		{ID: "4", Genre: "Drama"},
	}

	asc := Sort(books, SortSpec{Field: SortByGenre, Direction: Ascending})
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(asc))

	// 降序只对比较结果取反,相等元素仍保持原顺序
	desc := Sort(books, SortSpec{Field: SortByGenre, Direction: Descending})
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(desc))
}

func TestSort_AllYearsMissingKeepsOrder(t *testing.T) {
	books := []book.Book{{ID: "x"}, {ID: "y"}, {ID: "z"}}

	for _, dir := range []Direction{Ascending, Descending} {
		got := Sort(books, SortSpec{Field: SortByPublishedYear, Direction: dir})
		assert.Equal(t, []string{"x", "y", "z"}, ids(got), "direction=%s", dir)
	}
}

func TestSort_ISBNAndAuthor(t *testing.T) {
	books := sampleBooks()

	byISBN := Sort(books, SortSpec{Field: SortByISBN, Direction: Ascending})
	assert.Equal(t, []string{"3", "4", "2", "1", "5"}, ids(byISBN))

	byAuthor := Sort(books, SortSpec{Field: SortByAuthor, Direction: Ascending})
	assert.Equal(t, []string{"2", "4", "1", "5", "3"}, ids(byAuthor))
}

func TestSort_Deterministic(t *testing.T) {
	books := sampleBooks()
	for _, field := range SortFields {
		for _, dir := range []Direction{Ascending, Descending} {
			spec := SortSpec{Field: field, Direction: dir}
			first := Sort(books, spec)
			second := Sort(first, spec)
			if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
				t.Errorf("%v 重复排序结果不一致:\n%s", spec, diff)
			}
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	books := []book.Book{{Title: "B"}, {Title: "A"}}
	_ = Sort(books, SortSpec{Field: SortByTitle})
	assert.Equal(t, []string{"B", "A"}, titles(books))
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	books := []book.Book{{Title: "B"}, {Title: "A"}}
	got := Sort(books, SortSpec{Field: "price", Direction: Descending})
	assert.Equal(t, []string{"B", "A"}, titles(got))
}

func TestParseSortField(t *testing.T) {
	tests := map[string]SortField{
		"":               SortByTitle,
		"title":          SortByTitle,
		"Author":         SortByAuthor,
		"publishedYear":  SortByPublishedYear,
		"published_year": SortByPublishedYear,
		"genre":          SortByGenre,
		"ISBN":           SortByISBN,
	}
	for in, want := range tests {
		got, err := ParseSortField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortField("price")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)

	d, err = ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
