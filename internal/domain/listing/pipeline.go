package listing

import (
	"fmt"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// Status 列表派生结果的状态
type Status int

const (
	// StatusOK 有匹配的图书(当前页可能为空,例如页码越界)
	StatusOK Status = iota

	// StatusEmptyCollection 缓存中没有任何图书
	StatusEmptyCollection

	// StatusNoMatches 缓存非空,但过滤后没有图书
	StatusNoMatches
)

// String 状态名(用于日志和JSON)
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmptyCollection:
		return "empty_collection"
	case StatusNoMatches:
		return "no_matches"
	default:
		return "unknown"
	}
}

// Query 列表查询条件
type Query struct {
	Filter   FilterSpec
	Sort     SortSpec
	Page     int // 页码(从0开始)
	PageSize int // <=0时使用PageSize
}

// Result 派生结果
type Result struct {
	Page
	Status     Status
	Matched    int // 过滤后的数量
	Collection int // 缓存中的总数量
}

// Derive 列表派生管道:过滤 → 排序 → 分页
// 纯函数,不修改records
func Derive(records []book.Book, q Query) Result {
	filtered := Filter(records, q.Filter)
	sorted := Sort(filtered, q.Sort)
	page := Paginate(sorted, q.Page, q.PageSize)

	status := StatusOK
	switch {
	case len(records) == 0:
		status = StatusEmptyCollection
	case len(filtered) == 0:
		status = StatusNoMatches
	}

	return Result{
		Page:       page,
		Status:     status,
		Matched:    len(filtered),
		Collection: len(records),
	}
}

// Message 空结果时展示给用户的提示,非空结果返回空字符串
func (r Result) Message(filter FilterSpec) string {
	switch r.Status {
	case StatusEmptyCollection:
		if filter.Term != "" {
			return fmt.Sprintf("No books found matching \"%s\"", filter.Term)
		}
		return "No books found. Add some books to get started!"
	case StatusNoMatches:
		if filter.Term != "" {
			return fmt.Sprintf("No books found matching \"%s\"", filter.Term)
		}
		return "No books match the selected category"
	}
	return ""
}
