package book

import (
	"net/url"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// BookForm 图书表单DTO(新增、编辑共用)
// 所有字段都是原始字符串,规范化和校验由领域层负责
type BookForm struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear string
	Genre         string
	ImageURL      string
	Description   string
}

func (f BookForm) toFields() book.Fields {
	return book.Fields{
		Title:         f.Title,
		Author:        f.Author,
		ISBN:          f.ISBN,
		PublishedYear: f.PublishedYear,
		Genre:         f.Genre,
		ImageURL:      f.ImageURL,
		Description:   f.Description,
	}
}

// BookDTO 图书详情DTO
type BookDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Genre         string `json:"genre"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
}

// Links 列表项的导航链接
type Links struct {
	Details string `json:"details"`
	Edit    string `json:"edit"`
	Delete  string `json:"delete"`
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Genre         string `json:"genre"`
	ImageURL      string `json:"image_url"`
	Links         Links  `json:"links"`
}

func toBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		ImageURL:      b.ImageURL,
		Description:   b.Description,
	}
}

func toListItem(b book.Book) BookListItem {
	return BookListItem{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		ImageURL:      b.ImageURL,
		Links:         LinksFor(b.ID),
	}
}

// LinksFor 生成详情、编辑、删除页面的链接
func LinksFor(id string) Links {
	q := "?id=" + url.QueryEscape(id)
	return Links{
		Details: "/book-details" + q,
		Edit:    "/edit-book" + q,
		Delete:  "/delete-book" + q,
	}
}

// storeErr 业务错误原样返回,其他错误视为存储层失败
func storeErr(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.StoreError(err)
}
