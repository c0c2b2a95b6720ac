package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets
// ========================================

// infrastructureSet 记录存储、版本号来源、消息队列
var infrastructureSet = wire.NewSet(
	persistence.OpenRepository,
	persistence.OpenRevisionSource,
	provideEventPublisher,
)

// domainSet 领域服务与列表缓存
var domainSet = wire.NewSet(
	book.NewService,
	provideCache,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	providePageSize,
	appbook.NewInvalidator,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewEditBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewRefreshCatalogUseCase,
	appbook.NewCatalogStatusUseCase,
)

// interfaceSet HTTP处理器、中间件、路由
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewNavigationHandler,
	provideRateLimiter,
	provideRouter,
	provideListener,
	newApp,
)

// ========================================
// Custom Providers
// ========================================

// provideCache 从配置创建列表缓存,数据源为领域服务
func provideCache(svc book.Service, cfg *config.Config, log *zap.Logger) *listing.Cache {
	return listing.NewCache(svc, listing.CacheConfig{
		FetchTimeout: cfg.Catalog.FetchTimeout,
		Logger:       log,
	})
}

func providePageSize(cfg *config.Config) appbook.PageSize {
	return appbook.PageSize(cfg.Catalog.PageSize)
}

// provideEventPublisher mq未启用时返回nil,Invalidator只递增版本号
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (appbook.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return nil, func() {}, nil
	}
	publisher, cleanup, err := messaging.OpenPublisher(cfg.MQ, log)
	if err != nil {
		return nil, nil, err
	}
	return publisher, cleanup, nil
}

// provideListener mq未启用时返回nil
func provideListener(cfg *config.Config, invalidator *appbook.Invalidator, log *zap.Logger) (*messaging.Listener, func(), error) {
	if !cfg.MQ.Enabled {
		return nil, func() {}, nil
	}
	return messaging.OpenListener(cfg.MQ, invalidator, log)
}

// provideRateLimiter rate_limit未启用时返回nil
func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func provideRouter(
	cfg *config.Config,
	log *zap.Logger,
	limiter *middleware.RateLimiter,
	books *handler.BookHandler,
	nav *handler.NavigationHandler,
) *gin.Engine {
	return router.New(router.Options{
		Mode:        cfg.Server.Mode,
		ServiceName: cfg.Tracing.ServiceName,
		Swagger:     cfg.Server.Mode != gin.ReleaseMode,
		RateLimiter: limiter,
		Logger:      log,
	}, books, nav)
}

// App 组装完成的API进程
type App struct {
	Config   *config.Config
	Engine   *gin.Engine
	Limiter  *middleware.RateLimiter // 可能为nil
	Listener *messaging.Listener     // 可能为nil
	Logger   *zap.Logger
}

func newApp(cfg *config.Config, engine *gin.Engine, limiter *middleware.RateLimiter, listener *messaging.Listener, log *zap.Logger) *App {
	return &App{
		Config:   cfg,
		Engine:   engine,
		Limiter:  limiter,
		Listener: listener,
		Logger:   log,
	}
}

// RunBackground 启动限流器清理和失效事件监听,ctx取消时退出
func (a *App) RunBackground(ctx context.Context) {
	if a.Limiter != nil {
		go a.Limiter.Run(ctx)
	}
	if a.Listener != nil {
		go func() {
			if err := a.Listener.Run(ctx); err != nil && ctx.Err() == nil {
				a.Logger.Error("invalidation listener stopped", zap.Error(err))
			}
		}()
	}
}
