package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// EditBookUseCase 编辑图书用例(整体替换)
type EditBookUseCase struct {
	bookService book.Service
	invalidator *Invalidator
}

// NewEditBookUseCase 创建编辑用例
func NewEditBookUseCase(bookService book.Service, invalidator *Invalidator) *EditBookUseCase {
	return &EditBookUseCase{
		bookService: bookService,
		invalidator: invalidator,
	}
}

// EditBookRequest 编辑请求DTO
type EditBookRequest struct {
	ID string
	BookForm
}

// Execute 执行编辑用例
func (uc *EditBookUseCase) Execute(ctx context.Context, req EditBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.EditBook(ctx, req.ID, req.toFields())
	if err != nil {
		return nil, storeErr(err)
	}

	uc.invalidator.afterWrite(ctx, listing.ReasonUpdated, b.ID)
	return toBookDTO(b), nil
}
