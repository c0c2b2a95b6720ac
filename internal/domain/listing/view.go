package listing

// View 列表视图状态(搜索词、分类、排序、页码)
// 设计说明:
// 1. 视图状态是临时的,不持久化,由单个goroutine持有
// 2. 搜索词、分类或排序发生变化时,页码重置为0
// 3. 数据变少导致页码越界时不自动修正,由调用方决定是否Clamp
type View struct {
	term     string
	category string
	sort     SortSpec
	page     int
	pageSize int
}

// NewView 创建视图,pageSize<=0时使用默认每页数量
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &View{
		category: AllCategories,
		sort:     DefaultSort,
		pageSize: pageSize,
	}
}

// SetTerm 设置搜索词
func (v *View) SetTerm(term string) {
	if v.term == term {
		return
	}
	v.term = term
	v.page = 0
}

// SetCategory 设置分类,空字符串等同于All
func (v *View) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	if v.category == category {
		return
	}
	v.category = category
	v.page = 0
}

// SetSort 设置排序
func (v *View) SetSort(spec SortSpec) {
	if spec.Direction == "" {
		spec.Direction = Ascending
	}
	if v.sort == spec {
		return
	}
	v.sort = spec
	v.page = 0
}

// SetPage 跳转到指定页(从0开始),负数按0处理
func (v *View) SetPage(page int) {
	v.page = max(page, 0)
}

// Next 下一页,已是最后一页时返回false
func (v *View) Next(pageCount int) bool {
	if v.page+1 >= pageCount {
		return false
	}
	v.page++
	return true
}

// Prev 上一页,已是第一页时返回false
func (v *View) Prev() bool {
	if v.page == 0 {
		return false
	}
	v.page--
	return true
}

// Clamp 将页码限制在[0, pageCount-1]
func (v *View) Clamp(pageCount int) {
	if pageCount <= 0 {
		v.page = 0
		return
	}
	v.page = min(v.page, pageCount-1)
}

// Term 当前搜索词
func (v *View) Term() string { return v.term }

// Category 当前分类
func (v *View) Category() string { return v.category }

// Sort 当前排序
func (v *View) Sort() SortSpec { return v.sort }

// Page 当前页码
func (v *View) Page() int { return v.page }

// Query 生成派生管道的查询条件
func (v *View) Query() Query {
	return Query{
		Filter:   FilterSpec{Term: v.term, Category: v.category},
		Sort:     v.sort,
		Page:     v.page,
		PageSize: v.pageSize,
	}
}
