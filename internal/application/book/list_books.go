package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 列表数据来自列表缓存,版本号变化时才重新拉取全量数据
// 2. 搜索、分类、排序、分页都在内存中完成(listing.Derive)
// 3. 列表项不返回description字段
type ListBooksUseCase struct {
	revisions listing.RevisionSource
	cache     *listing.Cache
	pageSize  int
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(revisions listing.RevisionSource, cache *listing.Cache, pageSize PageSize) *ListBooksUseCase {
	return &ListBooksUseCase{
		revisions: revisions,
		cache:     cache,
		pageSize:  int(pageSize),
	}
}

// PageSize 每页数量(wire注入用的具名类型)
type PageSize int

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Term     string // 搜索词(书名、作者、ISBN)
	Category string // 分类,空或All表示全部
	SortBy   string // 排序字段(title/author/publishedYear/genre/isbn)
	Order    string // 排序方向(asc/desc)
	Page     int    // 页码(从0开始)
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List         []BookListItem `json:"list"`
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalPages   int            `json:"total_pages"`
	Matched      int            `json:"matched"`
	Total        int            `json:"total"`
	ShowControls bool           `json:"show_controls"`
	HasPrev      bool           `json:"has_prev"`
	HasNext      bool           `json:"has_next"`
	Revision     uint64         `json:"revision"`
}

// Execute 执行列表查询用例
// 流程:
// 1. 解析排序参数
// 2. 读取当前版本号,确保缓存与之一致
// 3. 过滤 -> 排序 -> 分页
// 4. 转换为DTO
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "bookshelf", "ListBooks")
	defer span.End()

	// 1. 解析排序参数
	field, err := listing.ParseSortField(req.SortBy)
	if err != nil {
		return nil, err
	}
	dir, err := listing.ParseDirection(req.Order)
	if err != nil {
		return nil, err
	}

	// 2. 确保缓存与当前版本号一致
	rev, err := uc.revisions.Current(ctx)
	if err != nil {
		return nil, apperrors.ErrCacheError.WithErr(err)
	}
	snap, err := uc.cache.Ensure(ctx, rev)
	if err != nil {
		span.RecordError(err)
		return nil, storeErr(err)
	}

	// 3. 派生当前页
	q := listing.Query{
		Filter:   listing.FilterSpec{Term: req.Term, Category: req.Category},
		Sort:     listing.SortSpec{Field: field, Direction: dir},
		Page:     req.Page,
		PageSize: uc.pageSize,
	}
	res := listing.Derive(snap.Records, q)
	span.SetAttributes(
		attribute.String("list.status", res.Status.String()),
		attribute.Int("list.matched", res.Matched),
		attribute.Int("list.page", res.Index),
	)

	// 4. 转换为DTO
	list := make([]BookListItem, len(res.Items))
	for i, b := range res.Items {
		list[i] = toListItem(b)
	}

	return &ListBooksResponse{
		List:         list,
		Status:       res.Status.String(),
		Message:      res.Message(q.Filter),
		Page:         res.Index,
		PageSize:     res.Size,
		TotalPages:   res.Count,
		Matched:      res.Matched,
		Total:        res.Collection,
		ShowControls: res.ShowControls(),
		HasPrev:      res.HasPrev(),
		HasNext:      res.HasNext(),
		Revision:     uint64(snap.Revision),
	}, nil
}
