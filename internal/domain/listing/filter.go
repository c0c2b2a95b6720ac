package listing

import (
	"strings"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// AllCategories 分类选择器中的"全部"选项
const AllCategories = "All"

// FilterSpec 过滤条件
type FilterSpec struct {
	// Term 搜索词,在书名/作者/ISBN中做不区分大小写的子串匹配
	Term string

	// Category 分类,空字符串或"All"表示不过滤;否则与图书分类精确匹配
	Category string
}

// IsZero 是否没有任何过滤条件
func (f FilterSpec) IsZero() bool {
	return f.Term == "" && isAllCategories(f.Category)
}

// Filter 过滤阶段
// 规则:
// 1. 搜索词为空,或书名/作者/ISBN任一包含搜索词(忽略大小写)
// 2. 分类为All/空,或图书分类与之完全相等(区分大小写)
// 3. 保持输入顺序,返回新切片,不修改输入
func Filter(records []book.Book, spec FilterSpec) []book.Book {
	term := strings.ToLower(spec.Term)
	out := make([]book.Book, 0, len(records))
	for _, b := range records {
		if matchesTerm(b, term) && matchesCategory(b, spec.Category) {
			out = append(out, b)
		}
	}
	return out
}

// matchesTerm term已转为小写
func matchesTerm(b book.Book, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term) ||
		strings.Contains(strings.ToLower(b.ISBN), term)
}

func matchesCategory(b book.Book, category string) bool {
	if isAllCategories(category) {
		return true
	}
	return b.Genre == category
}

func isAllCategories(category string) bool {
	return category == "" || category == AllCategories
}
