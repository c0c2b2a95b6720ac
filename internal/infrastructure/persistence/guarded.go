package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// GuardedRepository 带熔断保护的图书仓储
// 设计说明:
// 1. 只保护读取(ListAll、FindByID),写操作直接透传
// 2. 业务错误(图书不存在)和调用方取消不计为存储失败
// 3. 熔断期间返回ErrUnavailable,列表缓存保留上一次的内容
type GuardedRepository struct {
	inner   book.Repository
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedRepository 创建带熔断保护的仓储
func NewGuardedRepository(inner book.Repository, breaker *circuitbreaker.CircuitBreaker) *GuardedRepository {
	return &GuardedRepository{inner: inner, breaker: breaker}
}

// NewStoreBreaker 创建记录存储熔断器
func NewStoreBreaker(maxFailures uint32, cfg circuitbreaker.Config, log *zap.Logger) *circuitbreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	cfg.ReadyToTrip = func(c circuitbreaker.Counts) bool {
		return c.ConsecutiveFailures >= maxFailures
	}
	cfg.IsSuccessful = isStoreHealthy
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn("circuit breaker state changed",
			zap.String("name", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	}
	return circuitbreaker.NewCircuitBreaker("record-store", cfg)
}

// isStoreHealthy 判断一次调用是否说明存储可用
func isStoreHealthy(err error) bool {
	return err == nil ||
		apperrors.IsAppError(err) ||
		errors.Is(err, context.Canceled)
}

// ListAll 读取全部图书
func (r *GuardedRepository) ListAll(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	err := r.breaker.Execute(func() error {
		var err error
		books, err = r.inner.ListAll(ctx)
		return err
	})
	return books, unavailable(err)
}

// FindByID 根据ID查找图书
func (r *GuardedRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var b *book.Book
	err := r.breaker.Execute(func() error {
		var err error
		b, err = r.inner.FindByID(ctx, id)
		return err
	})
	return b, unavailable(err)
}

// Create 创建图书
func (r *GuardedRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	return r.inner.Create(ctx, b)
}

// Update 更新图书
func (r *GuardedRepository) Update(ctx context.Context, b *book.Book) error {
	return r.inner.Update(ctx, b)
}

// Delete 删除图书
func (r *GuardedRepository) Delete(ctx context.Context, id string) error {
	return r.inner.Delete(ctx, id)
}

func unavailable(err error) error {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return apperrors.ErrUnavailable.WithErr(err)
	}
	return err
}
