// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Options 路由选项
type Options struct {
	Mode        string // debug | release | test
	ServiceName string
	Swagger     bool
	RateLimiter *middleware.RateLimiter // nil表示不限流
	Logger      *zap.Logger
}

// New 创建gin引擎并注册全部路由
func New(opts Options, books *handler.BookHandler, nav *handler.NavigationHandler) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(opts.ServiceName),
		middleware.Logger(opts.Logger),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 生产环境建议关闭
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limited := r.Group("")
	if opts.RateLimiter != nil {
		limited.Use(opts.RateLimiter.Middleware())
	}

	// 列表项链接指向的页面
	limited.GET("/"+handler.ViewDetails, nav.Page(handler.ViewDetails))
	limited.GET("/"+handler.ViewEdit, nav.Page(handler.ViewEdit))
	limited.PUT("/"+handler.ViewEdit, nav.SubmitEdit)
	limited.GET("/"+handler.ViewDelete, nav.Page(handler.ViewDelete))
	limited.DELETE("/"+handler.ViewDelete, nav.SubmitDelete)

	v1 := limited.Group("/api/v1")
	{
		bookGroup := v1.Group("/books")
		{
			bookGroup.GET("", books.ListBooks)
			bookGroup.POST("", books.AddBook)
			bookGroup.POST("/refresh", books.RefreshCatalog)
			bookGroup.GET("/:id", books.GetBook)
			bookGroup.PUT("/:id", books.EditBook)
			bookGroup.DELETE("/:id", books.DeleteBook)
		}

		v1.GET("/categories", books.Categories)
		v1.GET("/catalog/status", books.CatalogStatus)
	}

	return r
}
