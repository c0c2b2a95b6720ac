package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// RefreshCatalogUseCase 手动刷新用例
// 递增版本号后立即拉取,不等下一次列表查询
type RefreshCatalogUseCase struct {
	invalidator *Invalidator
	cache       *listing.Cache
}

// NewRefreshCatalogUseCase 创建刷新用例
func NewRefreshCatalogUseCase(invalidator *Invalidator, cache *listing.Cache) *RefreshCatalogUseCase {
	return &RefreshCatalogUseCase{
		invalidator: invalidator,
		cache:       cache,
	}
}

// Execute 执行刷新
func (uc *RefreshCatalogUseCase) Execute(ctx context.Context) (*CatalogStatusResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "bookshelf", "RefreshCatalog")
	defer span.End()

	rev, err := uc.invalidator.Invalidate(ctx, listing.ReasonRefreshed, "")
	if err != nil {
		return nil, err
	}
	if _, err := uc.cache.Refresh(ctx, rev); err != nil {
		span.RecordError(err)
		return nil, storeErr(err)
	}
	return statusFrom(uc.cache.State(), rev), nil
}
