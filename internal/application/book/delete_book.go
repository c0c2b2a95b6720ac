package book

import (
	"context"
	"strings"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	invalidator *Invalidator
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, invalidator *Invalidator) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		invalidator: invalidator,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return storeErr(err)
	}

	uc.invalidator.afterWrite(ctx, listing.ReasonDeleted, strings.TrimSpace(id))
	return nil
}
