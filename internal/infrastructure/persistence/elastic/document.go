package elastic

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// bookDocument 索引中的图书文档
type bookDocument struct {
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedYear year      `json:"publishedYear"`
	Genre         string    `json:"genre"`
	ImageURL      string    `json:"imageUrl"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// bookUpdate 编辑时写入的字段(不含createdAt)
type bookUpdate struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear year   `json:"publishedYear"`
	Genre         string `json:"genre"`
	ImageURL      string `json:"imageUrl"`
	Description   string `json:"description"`
}

// year 出版年份
// 历史数据中年份可能以数字、数字字符串、空字符串或null存储,读取时统一转换;
// 无法解析的值按缺失处理
type year struct {
	v *int
}

func (y year) MarshalJSON() ([]byte, error) {
	if y.v == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*y.v)), nil
}

func (y *year) UnmarshalJSON(data []byte) error {
	y.v = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		n := int(v)
		y.v = &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			y.v = &n
		}
	}
	return nil
}

func toDocument(b *book.Book) bookDocument {
	return bookDocument{
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: year{v: copyYear(b.PublishedYear)},
		Genre:         b.Genre,
		ImageURL:      b.ImageURL,
		Description:   b.Description,
	}
}

func toUpdate(b *book.Book) bookUpdate {
	return bookUpdate{
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: year{v: copyYear(b.PublishedYear)},
		Genre:         b.Genre,
		ImageURL:      b.ImageURL,
		Description:   b.Description,
	}
}

// toBookEntity 文档 → 领域实体
func toBookEntity(id string, source json.RawMessage) (*book.Book, error) {
	var doc bookDocument
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, err
	}
	b := &book.Book{
		ID:            id,
		Title:         doc.Title,
		Author:        doc.Author,
		ISBN:          doc.ISBN,
		PublishedYear: doc.PublishedYear.v,
		Genre:         doc.Genre,
		ImageURL:      doc.ImageURL,
		Description:   doc.Description,
	}
	b.FillDefaults()
	return b, nil
}

func copyYear(y *int) *int {
	if y == nil {
		return nil
	}
	v := *y
	return &v
}
