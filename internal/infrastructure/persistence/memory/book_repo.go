package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookRepository 内存图书仓储
// 设计说明:
// 1. 用于本地开发(store.driver=memory)和单元测试
// 2. 保留插入顺序,ListAll按创建顺序返回(与文档存储的默认顺序一致)
// 3. ID使用UUID,模拟文档存储自动分配ID
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]book.Book
	order []string

	// failWith 非nil时所有操作返回该错误(模拟存储故障)
	failWith error
}

// NewBookRepository 创建内存仓储
func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[string]book.Book),
	}
}

// Seed 批量写入图书(保留传入的ID,为空时自动分配)
func (r *BookRepository) Seed(books ...book.Book) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(books))
	for _, b := range books {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if _, exists := r.books[b.ID]; !exists {
			r.order = append(r.order, b.ID)
		}
		r.books[b.ID] = cloneBook(b)
		ids = append(ids, b.ID)
	}
	return ids
}

// SetFailure 设置(或清除)模拟故障
func (r *BookRepository) SetFailure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// ListAll 读取全部图书
func (r *BookRepository) ListAll(ctx context.Context) ([]book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	books := make([]book.Book, 0, len(r.order))
	for _, id := range r.order {
		books = append(books, cloneBook(r.books[id]))
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *BookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	b = cloneBook(b)
	return &b, nil
}

// Create 创建图书
func (r *BookRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return "", r.failWith
	}

	id := uuid.NewString()
	stored := cloneBook(*b)
	stored.ID = id
	r.books[id] = stored
	r.order = append(r.order, id)
	return id, nil
}

// Update 整体替换图书
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.books[b.ID] = cloneBook(*b)
	return nil
}

// Delete 删除图书
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len 当前图书数量
func (r *BookRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}

// cloneBook 深拷贝(PublishedYear是指针)
func cloneBook(b book.Book) book.Book {
	if b.PublishedYear != nil {
		year := *b.PublishedYear
		b.PublishedYear = &year
	}
	return b
}
