package book

import (
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultGenre 未选择分类时的默认分类
	DefaultGenre = "Fiction"

	// GenrePlaceholder 表单下拉框的占位选项，提交时按未选择处理
	GenrePlaceholder = "Select a category"

	// PlaceholderImageURL 未提供封面时使用的占位图
	PlaceholderImageURL = "https://placehold.co/200x160"
)

// Categories 分类选择器中可选的分类
// 存储层不做约束，任意分类字符串都可以写入
var Categories = []string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Romance",
	"Biography",
	"History",
	"Self-Help",
	"Other",
}

// Book 图书记录(聚合根)
// 设计说明:
// 1. ID由记录存储分配,创建后不再变化
// 2. PublishedYear为nil表示未填写出版年份
// 3. 除ID外其余字段都可以被编辑(整体替换)
type Book struct {
	ID            string
	Title         string
	Author        string
	ISBN          string
	PublishedYear *int
	Genre         string
	ImageURL      string
	Description   string
}

// Fields 新增/编辑表单提交的原始字段
// 所有字段均为用户输入的文本,由NewBook/Apply负责规范化
type Fields struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear string
	Genre         string
	ImageURL      string
	Description   string
}

// NewBook 根据表单字段创建图书(工厂方法)
// 业务规则:
// - 书名、作者、ISBN、简介必填(去除首尾空格后非空)
// - 出版年份为空时视为未填写,非数字则拒绝
// - 分类缺省为Fiction,封面缺省为占位图
func NewBook(f Fields) (*Book, error) {
	b := &Book{}
	if err := b.Apply(f); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply 用表单字段整体替换图书内容(编辑)
// 校验失败时不修改原对象
func (b *Book) Apply(f Fields) error {
	// 1. 规范化
	f = f.Normalize()

	// 2. 必填校验
	if missing := f.Missing(); len(missing) > 0 {
		return ErrInvalidFields.WithMessage("Please fill in all required fields: " + strings.Join(missing, ", "))
	}

	// 3. 出版年份
	year, err := ParseYear(f.PublishedYear)
	if err != nil {
		return err
	}

	b.Title = f.Title
	b.Author = f.Author
	b.ISBN = f.ISBN
	b.PublishedYear = year
	b.Genre = f.Genre
	b.ImageURL = f.ImageURL
	b.Description = f.Description
	return nil
}

// FillDefaults 补全存储中缺失的分类和封面(旧数据可能没有这两个字段)
func (b *Book) FillDefaults() {
	if b.Genre == "" || b.Genre == GenrePlaceholder {
		b.Genre = DefaultGenre
	}
	if b.ImageURL == "" {
		b.ImageURL = PlaceholderImageURL
	}
}

// Year 返回出版年份,未填写时为0
// 排序时按0参与比较
func (b *Book) Year() int {
	if b.PublishedYear == nil {
		return 0
	}
	return *b.PublishedYear
}

// Fields 将图书转换回表单字段(编辑页回填)
func (b *Book) Fields() Fields {
	f := Fields{
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Genre:       b.Genre,
		ImageURL:    b.ImageURL,
		Description: b.Description,
	}
	if b.PublishedYear != nil {
		f.PublishedYear = strconv.Itoa(*b.PublishedYear)
	}
	return f
}

// Normalize 去除首尾空格并填充默认值
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.ISBN = strings.TrimSpace(f.ISBN)
	f.PublishedYear = strings.TrimSpace(f.PublishedYear)
	f.Genre = strings.TrimSpace(f.Genre)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Description = strings.TrimSpace(f.Description)

	if f.Genre == "" || f.Genre == GenrePlaceholder {
		f.Genre = DefaultGenre
	}
	if f.ImageURL == "" {
		f.ImageURL = PlaceholderImageURL
	}
	return f
}

// Missing 返回为空的必填字段名
func (f Fields) Missing() []string {
	var missing []string
	if f.Title == "" {
		missing = append(missing, "title")
	}
	if f.Author == "" {
		missing = append(missing, "author")
	}
	if f.ISBN == "" {
		missing = append(missing, "isbn")
	}
	if f.Description == "" {
		missing = append(missing, "description")
	}
	return missing
}

// ParseYear 解析出版年份
// 空字符串返回nil
func ParseYear(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return nil, ErrInvalidYear.WithErr(err)
	}
	return &year, nil
}

// IsKnownCategory 判断是否为预置分类
func IsKnownCategory(genre string) bool {
	return slices.Contains(Categories, genre)
}
