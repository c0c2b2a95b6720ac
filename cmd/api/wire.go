//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链:
// *App ← *gin.Engine ← Handler ← UseCase ← (book.Service, *listing.Cache, *Invalidator)
// book.Service ← book.Repository(按store.driver选择,带熔断保护)
// *Invalidator ← (listing.RevisionSource, EventPublisher)

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// InitializeApp 初始化整个应用
// 配置、Logger由main创建后传入(链路追踪和指标需要在此之前初始化)
// cleanup按创建的逆序关闭消息队列、版本号存储、记录存储连接
func InitializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
