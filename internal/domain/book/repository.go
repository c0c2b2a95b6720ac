package book

import (
	"context"
)

// Repository 记录存储网关(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(elastic/mysql/memory)
// 2. 存储只负责持久化和分配ID,不做任何过滤、排序、分页
// 3. 列表的派生全部在内存中完成(见listing包)
type Repository interface {
	// ListAll 读取全部图书
	ListAll(ctx context.Context) ([]Book, error)

	// FindByID 根据ID查找图书,不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// Create 创建图书,返回存储分配的ID
	Create(ctx context.Context, book *Book) (string, error)

	// Update 整体替换图书内容,不存在时返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id string) error
}
