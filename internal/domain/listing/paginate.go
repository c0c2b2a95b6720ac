package listing

import (
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// PageSize 每页显示的图书数量
const PageSize = 8

// Page 分页结果
type Page struct {
	Items []book.Book // 当前页的图书
	Index int         // 页码(从0开始)
	Size  int         // 每页数量
	Count int         // 总页数
	Total int         // 参与分页的记录总数
}

// ShowControls 是否显示翻页控件(超过一页时才显示)
func (p Page) ShowControls() bool {
	return p.Count > 1
}

// HasPrev 是否存在上一页
func (p Page) HasPrev() bool {
	return p.Index > 0 && p.Count > 0
}

// HasNext 是否存在下一页
func (p Page) HasNext() bool {
	return p.Index+1 < p.Count
}

// PageCount 计算总页数 ceil(n/size)
func PageCount(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate 分页阶段
// 取records[page*size : page*size+size],越界部分截断
// 页码超出范围时返回空切片,负数页码按0处理
func Paginate(records []book.Book, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	if page < 0 {
		page = 0
	}

	total := len(records)
	p := Page{
		Items: []book.Book{},
		Index: page,
		Size:  size,
		Count: PageCount(total, size),
		Total: total,
	}

	// 先与总页数比较,page*size可能溢出
	if page >= p.Count {
		return p
	}
	start := page * size
	end := min(start+size, total)
	p.Items = records[start:end:end]
	return p
}
