package mysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookModel GORM图书模型
// 设计说明:
// 1. 主键使用UUID字符串,与文档存储分配的ID形式一致
// 2. CreatedAt带索引,ListAll按创建顺序返回
// 3. 软删除,删除后FindByID返回"Book not found"
type BookModel struct {
	ID            string         `gorm:"primaryKey;size:36"`
	Title         string         `gorm:"size:255;not null;comment:书名"`
	Author        string         `gorm:"size:255;not null;comment:作者"`
	ISBN          string         `gorm:"column:isbn;size:32;not null;comment:ISBN号"`
	PublishedYear *int           `gorm:"comment:出版年份(可为空)"`
	Genre         string         `gorm:"size:64;not null;default:Fiction;comment:分类"`
	ImageURL      string         `gorm:"size:500;comment:封面图片URL"`
	Description   string         `gorm:"type:text;comment:图书简介"`
	CreatedAt     time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BeforeCreate 未指定ID时分配UUID
func (m *BookModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: copyYear(b.PublishedYear),
		Genre:         b.Genre,
		ImageURL:      b.ImageURL,
		Description:   b.Description,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	b := &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		Author:        m.Author,
		ISBN:          m.ISBN,
		PublishedYear: copyYear(m.PublishedYear),
		Genre:         m.Genre,
		ImageURL:      m.ImageURL,
		Description:   m.Description,
	}
	b.FillDefaults()
	return b
}

func copyYear(y *int) *int {
	if y == nil {
		return nil
	}
	v := *y
	return &v
}
