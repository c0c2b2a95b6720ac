package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误原样返回,由应用层统一包装为"Error: <原因>"
type bookRepository struct {
	tx *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{tx: NewTxManager(db)}
}

// ListAll 读取全部图书(按创建时间升序)
func (r *bookRepository) ListAll(ctx context.Context) ([]book.Book, error) {
	var models []BookModel
	if err := r.tx.conn(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	books := make([]book.Book, len(models))
	for i := range models {
		books[i] = *toBookEntity(&models[i])
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := r.tx.conn(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}

	return toBookEntity(&model), nil
}

// Create 创建图书,返回分配的ID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	model := toBookModel(b)
	model.ID = "" // ID由BeforeCreate分配

	if err := r.tx.conn(ctx).Create(model).Error; err != nil {
		return "", err
	}
	return model.ID, nil
}

// Update 整体更新图书(除ID和创建时间外的所有字段)
// 更新与存在性检查在同一事务中执行
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := r.tx.conn(ctx)

		// Select显式列出字段,零值(如清空的年份)也会被写入
		result := db.Model(&BookModel{ID: b.ID}).
			Select("title", "author", "isbn", "published_year", "genre", "image_url", "description").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}

		// MySQL在值未变化时RowsAffected为0,需要再确认记录是否存在
		if result.RowsAffected == 0 {
			var count int64
			if err := db.Model(&BookModel{}).Where("id = ?", b.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return book.ErrBookNotFound
			}
		}
		return nil
	})
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result := r.tx.conn(ctx).Where("id = ?", id).Delete(&BookModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}
