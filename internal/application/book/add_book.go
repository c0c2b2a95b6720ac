package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// AddBookUseCase 新增图书用例
// 设计说明:
// 1. 字段规范化与校验由领域服务负责
// 2. 写入成功后递增版本号,列表下次查询时重新拉取
type AddBookUseCase struct {
	bookService book.Service
	invalidator *Invalidator
}

// NewAddBookUseCase 创建新增用例
func NewAddBookUseCase(bookService book.Service, invalidator *Invalidator) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		invalidator: invalidator,
	}
}

// Execute 执行新增用例
func (uc *AddBookUseCase) Execute(ctx context.Context, req BookForm) (*BookDTO, error) {
	b, err := uc.bookService.AddBook(ctx, req.toFields())
	if err != nil {
		return nil, storeErr(err)
	}

	uc.invalidator.afterWrite(ctx, listing.ReasonCreated, b.ID)
	return toBookDTO(b), nil
}
