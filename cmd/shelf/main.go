// Command shelf 图书目录的终端客户端
//
// 与API进程共用同一份配置、存储和版本号来源;
// 启用mq时同时监听其他进程发布的失效事件。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence"
	"github.com/xiebiao/bookshelf/internal/interface/cli"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

func main() {
	configPath := pflag.String("config", "", "配置文件路径(默认查找config/config.yaml)")
	history := pflag.String("history", defaultHistoryFile(), "命令历史文件,为空时不保存")
	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 日志不能写到stdout,否则会和表格输出混在一起
	output := cfg.Log.Output
	if output == "" || output == "stdout" {
		output = "stderr"
	}
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cfg, zlog, *history); err != nil {
		zlog.Error("shelf exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger, history string) error {
	repo, closeRepo, err := persistence.OpenRepository(ctx, cfg, zlog)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeRepo()

	revisions, closeRevisions, err := persistence.OpenRevisionSource(cfg, zlog)
	if err != nil {
		return fmt.Errorf("open revision source: %w", err)
	}
	defer closeRevisions()

	svc := book.NewService(repo)
	cache := listing.NewCache(svc, listing.CacheConfig{
		FetchTimeout: cfg.Catalog.FetchTimeout,
		Logger:       zlog,
	})

	// publisher必须以接口nil传入,不能是nil指针
	var publisher appbook.EventPublisher
	if cfg.MQ.Enabled {
		p, closePublisher, err := messaging.OpenPublisher(cfg.MQ, zlog)
		if err != nil {
			return fmt.Errorf("open publisher: %w", err)
		}
		defer closePublisher()
		publisher = p
	}
	invalidator := appbook.NewInvalidator(revisions, publisher, zlog)

	if cfg.MQ.Enabled {
		listener, closeListener, err := messaging.OpenListener(cfg.MQ, invalidator, zlog)
		if err != nil {
			return fmt.Errorf("open listener: %w", err)
		}
		defer closeListener()
		go func() {
			if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
				zlog.Error("invalidation listener stopped", zap.Error(err))
			}
		}()
	}

	uc := cli.UseCases{
		List:    appbook.NewListBooksUseCase(revisions, cache, appbook.PageSize(cfg.Catalog.PageSize)),
		Get:     appbook.NewGetBookUseCase(svc),
		Add:     appbook.NewAddBookUseCase(svc, invalidator),
		Edit:    appbook.NewEditBookUseCase(svc, invalidator),
		Delete:  appbook.NewDeleteBookUseCase(svc, invalidator),
		Refresh: appbook.NewRefreshCatalogUseCase(invalidator, cache),
		Status:  appbook.NewCatalogStatusUseCase(revisions, cache),
	}

	return repl(ctx, uc, cfg, history)
}

// repl 读取命令直到quit、Ctrl-C或EOF
func repl(ctx context.Context, uc cli.UseCases, cfg *config.Config, history string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	shell := cli.NewShell(uc, cfg.Catalog.PageSize, line, os.Stdout)
	line.SetCompleter(shell.Complete)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer saveHistory(line, history)
	}

	fmt.Printf("shelf - book catalog (store=%s, revision=%s)\n", cfg.Store.Driver, cfg.Catalog.Revision)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	shell.Exec(ctx, "list")

	for {
		input, err := line.Prompt("shelf> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if shell.Exec(ctx, input) {
			fmt.Println("Bye!")
			return nil
		}
	}
}

func saveHistory(line *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bookshelf_history")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
