package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
// 详情直接读存储,不经过列表缓存
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*BookDTO, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return toBookDTO(b), nil
}
