package book

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// EventPublisher 失效事件发布接口(由messaging.Publisher实现)
type EventPublisher interface {
	PublishInvalidation(ctx context.Context, event listing.Invalidation) error
}

// Invalidator 缓存失效协调器
// 设计说明:
// 1. 写操作成功后递增版本号,下一次列表查询发现版本号变化后重新拉取
// 2. publisher为nil时只递增版本号(单实例部署)
// 3. 事件发布失败只记日志,写操作本身已经成功
type Invalidator struct {
	revisions listing.RevisionSource
	publisher EventPublisher
	origin    string
	logger    *zap.Logger
}

// NewInvalidator 创建失效协调器,origin为本实例的随机标识
func NewInvalidator(revisions listing.RevisionSource, publisher EventPublisher, logger *zap.Logger) *Invalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invalidator{
		revisions: revisions,
		publisher: publisher,
		origin:    uuid.NewString(),
		logger:    logger.Named("invalidator"),
	}
}

// Origin 本实例标识
func (i *Invalidator) Origin() string {
	return i.origin
}

// Invalidate 递增版本号并发布失效事件
func (i *Invalidator) Invalidate(ctx context.Context, reason listing.InvalidationReason, bookID string) (listing.Revision, error) {
	// 1. 递增版本号
	rev, err := i.revisions.Bump(ctx)
	if err != nil {
		i.logger.Error("bump revision failed",
			zap.String("reason", string(reason)),
			zap.String("book_id", bookID),
			zap.Error(err),
		)
		return 0, apperrors.ErrCacheError.WithErr(err)
	}
	metrics.CatalogRevisionBumped(string(reason))

	// 2. 发布事件
	if i.publisher == nil {
		return rev, nil
	}
	event := listing.Invalidation{
		Revision:   rev,
		Reason:     reason,
		BookID:     bookID,
		Origin:     i.origin,
		OccurredAt: time.Now().UTC(),
	}
	if err := i.publisher.PublishInvalidation(ctx, event); err != nil {
		i.logger.Warn("publish invalidation failed",
			zap.Uint64("revision", uint64(rev)),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
	}
	return rev, nil
}

// HandleRemote 处理其他实例发布的失效事件
// 自己发布的事件直接跳过,返回是否递增了本地版本号
func (i *Invalidator) HandleRemote(ctx context.Context, event listing.Invalidation) (bool, error) {
	if event.Origin == i.origin {
		return false, nil
	}
	rev, err := i.revisions.Bump(ctx)
	if err != nil {
		return false, apperrors.ErrCacheError.WithErr(err)
	}
	metrics.CatalogRevisionBumped(string(listing.ReasonRemote))
	i.logger.Debug("remote invalidation applied",
		zap.String("origin", event.Origin),
		zap.String("reason", string(event.Reason)),
		zap.Uint64("revision", uint64(rev)),
	)
	return true, nil
}

// afterWrite 写操作成功后的失效处理,版本号递增失败不影响写操作的结果
func (i *Invalidator) afterWrite(ctx context.Context, reason listing.InvalidationReason, bookID string) {
	if i == nil {
		return
	}
	_, _ = i.Invalidate(ctx, reason, bookID)
}
