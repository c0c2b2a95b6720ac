package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// SortField 排序字段
type SortField string

const (
	SortByTitle         SortField = "title"
	SortByAuthor        SortField = "author"
	SortByPublishedYear SortField = "publishedYear"
	SortByGenre         SortField = "genre"
	SortByISBN          SortField = "isbn"
)

// SortFields 全部可选排序字段(按选择器中的顺序)
var SortFields = []SortField{SortByTitle, SortByAuthor, SortByPublishedYear, SortByGenre, SortByISBN}

// Direction 排序方向
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

var (
	// ErrInvalidSortField 未知的排序字段
	ErrInvalidSortField = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid sort field")

	// ErrInvalidDirection 未知的排序方向
	ErrInvalidDirection = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid sort order")
)

// SortSpec 排序条件
type SortSpec struct {
	Field     SortField
	Direction Direction
}

// DefaultSort 默认按书名升序
var DefaultSort = SortSpec{Field: SortByTitle, Direction: Ascending}

// ParseSortField 解析排序字段(忽略大小写,支持published_year/year写法)
// 空字符串返回默认字段
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultSort.Field, nil
	case "title":
		return SortByTitle, nil
	case "author":
		return SortByAuthor, nil
	case "publishedyear", "published_year", "year":
		return SortByPublishedYear, nil
	case "genre", "category":
		return SortByGenre, nil
	case "isbn":
		return SortByISBN, nil
	}
	return "", ErrInvalidSortField.WithMessage(fmt.Sprintf("Invalid sort field: %q", s))
}

// ParseDirection 解析排序方向,空字符串为升序
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", ErrInvalidDirection.WithMessage(fmt.Sprintf("Invalid sort order: %q", s))
}

// Sort 排序阶段
// 规则:
// 1. 出版年份按数值比较,未填写按0处理
// 2. 其他字段按字节序比较(区分大小写)
// 3. 降序直接对比较结果取反
// 4. 稳定排序,相等元素保持过滤阶段的顺序,没有次级排序键
// 返回新切片,不修改输入
func Sort(records []book.Book, spec SortSpec) []book.Book {
	out := slices.Clone(records)
	if out == nil {
		out = []book.Book{}
	}

	compare := comparator(spec.Field)
	if spec.Direction == Descending {
		asc := compare
		compare = func(a, b book.Book) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// comparator 返回字段的升序比较函数
// 未知字段视为全部相等(保持原顺序)
func comparator(field SortField) func(a, b book.Book) int {
	switch field {
	case SortByTitle:
		return func(a, b book.Book) int { return strings.Compare(a.Title, b.Title) }
	case SortByAuthor:
		return func(a, b book.Book) int { return strings.Compare(a.Author, b.Author) }
	case SortByPublishedYear:
		return func(a, b book.Book) int { return cmp.Compare(a.Year(), b.Year()) }
	case SortByGenre:
		return func(a, b book.Book) int { return strings.Compare(a.Genre, b.Genre) }
	case SortByISBN:
		return func(a, b book.Book) int { return strings.Compare(a.ISBN, b.ISBN) }
	default:
		return func(a, b book.Book) int { return 0 }
	}
}
