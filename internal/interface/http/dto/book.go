package dto

import appbook "github.com/xiebiao/bookshelf/internal/application/book"

// BookRequest HTTP新增/编辑请求
// 必填字段的校验由领域层负责(统一返回"Please fill in all required fields"),
// 这里只限制长度
// published_year使用字符串,与表单输入一致,非数字由领域层拒绝
type BookRequest struct {
	Title         string `json:"title" binding:"max=500" example:"The Hobbit"`
	Author        string `json:"author" binding:"max=200" example:"J.R.R. Tolkien"`
	ISBN          string `json:"isbn" binding:"max=32" example:"9780547928227"`
	PublishedYear string `json:"published_year" binding:"max=8" example:"1937"`
	Genre         string `json:"genre" binding:"max=100" example:"Fantasy"`
	ImageURL      string `json:"image_url" binding:"omitempty,max=2000" example:"https://placehold.co/200x160"`
	Description   string `json:"description" binding:"max=10000" example:"A hobbit goes on an adventure"`
}

// ToForm 转换为应用层表单
func (r BookRequest) ToForm() appbook.BookForm {
	return appbook.BookForm{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		ImageURL:      r.ImageURL,
		Description:   r.Description,
	}
}

// ListBooksQuery HTTP图书列表查询参数
// 页码从0开始
type ListBooksQuery struct {
	Term     string `form:"q" binding:"max=200" example:"tolkien"`
	Category string `form:"category" binding:"max=100" example:"Fantasy"`
	SortBy   string `form:"sort" binding:"max=32" example:"publishedYear"`
	Order    string `form:"order" binding:"max=16" example:"desc"`
	Page     int    `form:"page" binding:"min=0" example:"0"`
}

// ToRequest 转换为应用层请求
func (q ListBooksQuery) ToRequest() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		Term:     q.Term,
		Category: q.Category,
		SortBy:   q.SortBy,
		Order:    q.Order,
		Page:     q.Page,
	}
}

// CategoriesResponse 分类列表
type CategoriesResponse struct {
	All        string   `json:"all" example:"All"`
	Categories []string `json:"categories"`
	Default    string   `json:"default" example:"Fiction"`
}

// PageView 导航页面的响应(详情/编辑/删除确认)
type PageView struct {
	View string           `json:"view" example:"book-details"`
	Book *appbook.BookDTO `json:"book"`
}
