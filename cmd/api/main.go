package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookshelf/docs"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// @title           Bookshelf API
// @version         1.0
// @description     图书目录服务:全量列表缓存 + 内存中的搜索、分类、排序、分页
// @host            localhost:8080
// @BasePath        /

// main API进程入口
// 启动顺序:配置 → 日志 → 链路追踪/指标 → Wire组装 → HTTP服务 + 后台任务
// 收到SIGINT/SIGTERM后先停止接收请求,再关闭后台任务和底层连接
func main() {
	configPath := pflag.String("config", "", "配置文件路径(默认查找config/config.yaml)")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	zlog.Info("config loaded",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("store", cfg.Store.Driver),
		zap.String("revision", cfg.Catalog.Revision),
		zap.Bool("mq", cfg.MQ.Enabled),
	)

	// 3. 链路追踪与指标
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("init tracer failed", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}
	metrics.InitMetrics()

	// 4. 依赖注入
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	app, cleanup, err := InitializeApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("initialize app failed", zap.Error(err))
	}
	defer cleanup()

	app.RunBackground(ctx)

	// 5. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 6. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http server forced to close", zap.Error(err))
	}
	stop()

	zlog.Info("server exited")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
