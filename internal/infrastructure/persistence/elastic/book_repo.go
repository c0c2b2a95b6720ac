package elastic

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// refreshPolicy 写操作等待刷新后返回,保证随后的ListAll能读到
const refreshPolicy = "wait_for"

// bookRepository 图书仓储实现(Elasticsearch)
// 设计说明:
// 1. 文档ID由Elasticsearch分配
// 2. ListAll使用scroll读取全部文档,按createdAt升序
// 3. 404统一转换为ErrBookNotFound
type bookRepository struct {
	client     *elastic.Client
	index      string
	scrollSize int
}

// NewBookRepository 创建图书仓储
func NewBookRepository(client *elastic.Client, index string, scrollSize int) book.Repository {
	if scrollSize <= 0 {
		scrollSize = 500
	}
	return &bookRepository{
		client:     client,
		index:      index,
		scrollSize: scrollSize,
	}
}

// ListAll 读取全部图书
func (r *bookRepository) ListAll(ctx context.Context) ([]book.Book, error) {
	scroll := r.client.Scroll(r.index).
		Size(r.scrollSize).
		SortBy(elastic.NewFieldSort("createdAt").Asc().UnmappedType("date"))
	defer func() {
		_ = scroll.Clear(context.Background())
	}()

	books := []book.Book{}
	for {
		res, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			// 索引尚未创建视为空集合
			if elastic.IsNotFound(err) {
				return []book.Book{}, nil
			}
			return nil, err
		}

		for _, hit := range res.Hits.Hits {
			b, err := toBookEntity(hit.Id, hit.Source)
			if err != nil {
				return nil, fmt.Errorf("decode book %s: %w", hit.Id, err)
			}
			books = append(books, *b)
		}
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	res, err := r.client.Get().Index(r.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}
	if !res.Found {
		return nil, book.ErrBookNotFound
	}

	return toBookEntity(res.Id, res.Source)
}

// Create 创建图书,返回Elasticsearch分配的ID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	doc := toDocument(b)
	doc.CreatedAt = time.Now().UTC()

	res, err := r.client.Index().
		Index(r.index).
		BodyJson(doc).
		Refresh(refreshPolicy).
		Do(ctx)
	if err != nil {
		return "", err
	}
	return res.Id, nil
}

// Update 整体更新图书(createdAt保持不变)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	_, err := r.client.Update().
		Index(r.index).
		Id(b.ID).
		Doc(toUpdate(b)).
		Refresh(refreshPolicy).
		Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return book.ErrBookNotFound
		}
		return err
	}
	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Delete().
		Index(r.index).
		Id(id).
		Refresh(refreshPolicy).
		Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return book.ErrBookNotFound
		}
		return err
	}
	return nil
}
