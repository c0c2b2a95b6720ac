// Package persistence 根据配置组装记录存储和版本号来源
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/elastic"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
)

// OpenRepository 按store.driver创建图书仓储,并加上熔断保护
// 返回的cleanup用于关闭底层连接
func OpenRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (book.Repository, func(), error) {
	inner, cleanup, err := openDriver(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	breaker := NewStoreBreaker(uint32(cfg.Store.BreakerMaxFailures), circuitbreaker.Config{
		Timeout: cfg.Store.BreakerTimeout,
	}, log)

	log.Info("record store ready", zap.String("driver", cfg.Store.Driver))
	return NewGuardedRepository(inner, breaker), cleanup, nil
}

func openDriver(ctx context.Context, cfg *config.Config, log *zap.Logger) (book.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverElastic:
		client, err := elastic.NewClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := elastic.EnsureIndex(ctx, client, cfg.Elastic.Index); err != nil {
			client.Stop()
			return nil, nil, err
		}
		return elastic.NewBookRepository(client, cfg.Elastic.Index, cfg.Elastic.ScrollSize), client.Stop, nil

	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return mysql.NewBookRepository(db), cleanup, nil

	case config.DriverMemory:
		return memory.NewBookRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
	}
}

// OpenRevisionSource 按catalog.revision创建版本号来源
func OpenRevisionSource(cfg *config.Config, log *zap.Logger) (listing.RevisionSource, func(), error) {
	switch cfg.Catalog.Revision {
	case config.RevisionRedis:
		client, err := redis.NewClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Close() }
		return redis.NewRevisionStore(client, cfg.Catalog.RevisionKey), cleanup, nil

	case config.RevisionLocal:
		return listing.NewLocalRevision(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown revision source: %q", cfg.Catalog.Revision)
	}
}
