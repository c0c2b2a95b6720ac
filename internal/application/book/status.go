package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// CatalogStatusUseCase 列表缓存状态查询用例
type CatalogStatusUseCase struct {
	revisions listing.RevisionSource
	cache     *listing.Cache
}

// NewCatalogStatusUseCase 创建状态查询用例
func NewCatalogStatusUseCase(revisions listing.RevisionSource, cache *listing.Cache) *CatalogStatusUseCase {
	return &CatalogStatusUseCase{
		revisions: revisions,
		cache:     cache,
	}
}

// CatalogStatusResponse 缓存状态DTO
type CatalogStatusResponse struct {
	Loaded          bool   `json:"loaded"`
	Loading         int    `json:"loading"`
	Stale           bool   `json:"stale"`
	CachedRevision  uint64 `json:"cached_revision"`
	CurrentRevision uint64 `json:"current_revision"`
	Records         int    `json:"records"`
	Generation      uint64 `json:"generation"`
	LastError       string `json:"last_error,omitempty"`
	FetchedAt       string `json:"fetched_at,omitempty"`
}

// Execute 查询缓存状态
func (uc *CatalogStatusUseCase) Execute(ctx context.Context) (*CatalogStatusResponse, error) {
	rev, err := uc.revisions.Current(ctx)
	if err != nil {
		return nil, apperrors.ErrCacheError.WithErr(err)
	}
	return statusFrom(uc.cache.State(), rev), nil
}

func statusFrom(st listing.State, current listing.Revision) *CatalogStatusResponse {
	resp := &CatalogStatusResponse{
		Loaded:          st.Loaded,
		Loading:         st.Loading,
		Stale:           !st.Loaded || st.Revision != current,
		CachedRevision:  uint64(st.Revision),
		CurrentRevision: uint64(current),
		Records:         st.Records,
		Generation:      st.Generation,
	}
	if st.Err != nil {
		resp.LastError = st.Err.Error()
	}
	if !st.FetchedAt.IsZero() {
		resp.FetchedAt = st.FetchedAt.Format(time.RFC3339)
	}
	return resp
}
