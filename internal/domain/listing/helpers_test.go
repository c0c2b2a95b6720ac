package listing

import (
	"fmt"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

func year(y int) *int { return &y }

func titles(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func ids(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

// sampleBooks 一组覆盖各字段的图书
func sampleBooks() []book.Book {
	return []book.Book{
		{ID: "1", Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", PublishedYear: year(1937), Genre: "Fantasy"},
		{ID: "2", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", PublishedYear: year(1965), Genre: "Science Fiction"},
		{ID: "3", Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097", PublishedYear: year(2011), Genre: "History"},
		{ID: "4", Title: "Gone Girl", Author: "Gillian Flynn", ISBN: "9780307588371", Genre: "Mystery"},
		{ID: "5", Title: "the silmarillion", Author: "J.R.R. Tolkien", ISBN: "9780618391110", PublishedYear: year(1977), Genre: "Fantasy"},
	}
}

// numbered 生成n本书,ID为b00..b(n-1),书名按ID顺序递增
func numbered(n int) []book.Book {
	out := make([]book.Book, n)
	for i := range out {
		out[i] = book.Book{
			ID:    fmt.Sprintf("b%02d", i),
			Title: fmt.Sprintf("Book %02d", i),
			Genre: book.DefaultGenre,
		}
	}
	return out
}
