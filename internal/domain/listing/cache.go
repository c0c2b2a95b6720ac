package listing

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// Source 列表缓存的数据来源(book.Service/book.Repository都满足)
type Source interface {
	ListAll(ctx context.Context) ([]book.Book, error)
}

// CacheConfig 列表缓存配置
type CacheConfig struct {
	FetchTimeout time.Duration // 单次拉取超时,0表示不限制
	Logger       *zap.Logger
}

// Snapshot 缓存快照
type Snapshot struct {
	Records   []book.Book
	Revision  Revision
	Loaded    bool
	FetchedAt time.Time
}

// State 缓存状态(状态接口使用)
type State struct {
	Loaded     bool
	Loading    int
	Revision   Revision
	Records    int
	Generation uint64
	Err        error
	FetchedAt  time.Time
}

// Cache 列表缓存
// 设计说明:
// 1. 每次拉取成功后整体替换内容,不做合并
// 2. 每次拉取都分配一个递增的代号,只有最后发起的那次拉取结果会被应用;
//    先发起、后返回的旧结果直接丢弃
// 3. 拉取失败时保留上一次的内容和版本号,只记录错误
// 4. 并发拉取不合并,由代号决定谁生效
type Cache struct {
	source  Source
	timeout time.Duration
	logger  *zap.Logger

	mu        sync.Mutex
	records   []book.Book
	revision  Revision
	loaded    bool
	err       error
	fetchedAt time.Time
	issued    uint64
	loading   int
	latest    *fetchCall
}

// fetchCall 一次拉取,done在拉取结束(无论是否被应用)时关闭
type fetchCall struct {
	gen  uint64
	done chan struct{}
}

// NewCache 创建列表缓存(初始为空)
func NewCache(source Source, cfg CacheConfig) *Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		source:  source,
		timeout: cfg.FetchTimeout,
		logger:  logger.Named("list_cache"),
		records: []book.Book{},
	}
}

// Ensure 确保缓存与rev一致
// 尚未加载或版本号不一致时重新拉取,否则直接返回当前快照
func (c *Cache) Ensure(ctx context.Context, rev Revision) (Snapshot, error) {
	c.mu.Lock()
	if c.loaded && c.revision == rev {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	return c.Refresh(ctx, rev)
}

// Refresh 立即拉取并(在未被后续拉取取代时)应用结果
// 返回:
// - 成功: 新快照
// - 失败: 上一次的快照 + 错误
// - 被取代: 等待最后发起的拉取结束后的快照
func (c *Cache) Refresh(ctx context.Context, rev Revision) (Snapshot, error) {
	// 1. 分配代号
	c.mu.Lock()
	c.issued++
	call := &fetchCall{gen: c.issued, done: make(chan struct{})}
	c.latest = call
	c.loading++
	c.mu.Unlock()

	// 2. 拉取(不持锁)
	start := time.Now()
	records, err := c.fetch(ctx, call.gen)
	elapsed := time.Since(start)

	// 3. 应用结果
	c.mu.Lock()
	c.loading--

	if c.latest != call {
		c.mu.Unlock()
		close(call.done)
		metrics.CatalogFetchSuperseded()
		c.logger.Debug("discarding superseded fetch",
			zap.Uint64("generation", call.gen),
			zap.Int("records", len(records)),
			zap.Error(err),
		)
		return c.awaitLatest(ctx)
	}

	if err != nil {
		c.err = err
		snap := c.snapshotLocked()
		close(call.done)
		c.mu.Unlock()
		metrics.ObserveCatalogFetch("failure", elapsed)
		c.logger.Warn("fetch failed, keeping previous records",
			zap.Uint64("generation", call.gen),
			zap.Uint64("revision", uint64(snap.Revision)),
			zap.Error(err),
		)
		return snap, err
	}

	c.records = records
	c.revision = rev
	c.loaded = true
	c.err = nil
	c.fetchedAt = time.Now()
	snap := c.snapshotLocked()
	close(call.done)
	c.mu.Unlock()

	metrics.ObserveCatalogFetch("success", elapsed)
	metrics.SetCatalogRecords(len(records))
	c.logger.Debug("list cache replaced",
		zap.Uint64("generation", call.gen),
		zap.Uint64("revision", uint64(rev)),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", elapsed),
	)
	return snap, nil
}

// fetch 调用数据源,附带超时与追踪
func (c *Cache) fetch(ctx context.Context, gen uint64) ([]book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, "bookshelf", "ListCache.Fetch")
	defer span.End()
	span.SetAttributes(attribute.Int64("cache.generation", int64(gen)))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	records, err := c.source.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if records == nil {
		records = []book.Book{}
	}
	span.SetAttributes(attribute.Int("cache.records", len(records)))
	return records, nil
}

// awaitLatest 等待最后发起的拉取结束,返回其应用后的快照和错误
func (c *Cache) awaitLatest(ctx context.Context) (Snapshot, error) {
	for {
		c.mu.Lock()
		latest := c.latest
		c.mu.Unlock()

		select {
		case <-latest.done:
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		}

		c.mu.Lock()
		if c.latest == latest {
			snap, err := c.snapshotLocked(), c.err
			c.mu.Unlock()
			return snap, err
		}
		c.mu.Unlock()
	}
}

// Snapshot 当前快照(记录为副本,调用方可以随意修改)
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cache) snapshotLocked() Snapshot {
	return Snapshot{
		Records:   slices.Clone(c.records),
		Revision:  c.revision,
		Loaded:    c.loaded,
		FetchedAt: c.fetchedAt,
	}
}

// State 当前状态
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Loaded:     c.loaded,
		Loading:    c.loading,
		Revision:   c.revision,
		Records:    len(c.records),
		Generation: c.issued,
		Err:        c.err,
		FetchedAt:  c.fetchedAt,
	}
}

// Err 最近一次被应用的拉取错误
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
