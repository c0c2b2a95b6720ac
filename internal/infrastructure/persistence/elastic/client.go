package elastic

import (
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// indexMapping books索引映射
// 文本字段同时保留keyword子字段,createdAt用于ListAll的排序
const indexMapping = `{
  "mappings": {
    "properties": {
      "title":         {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "author":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "isbn":          {"type": "keyword"},
      "publishedYear": {"type": "integer"},
      "genre":         {"type": "keyword"},
      "imageUrl":      {"type": "keyword", "index": false},
      "description":   {"type": "text"},
      "createdAt":     {"type": "date"}
    }
  }
}`

// NewClient 创建Elasticsearch客户端
// 设计说明：
// 1. 单节点或容器环境需要关闭sniff，否则客户端会尝试连接内部地址
// 2. 启动时检查连接，失败直接返回错误
func NewClient(cfg *config.Config, log *zap.Logger) (*elastic.Client, error) {
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.Elastic.URL),
		elastic.SetSniff(cfg.Elastic.Sniff),
	}
	if cfg.Elastic.HealthCheck > 0 {
		opts = append(opts, elastic.SetHealthcheckInterval(cfg.Elastic.HealthCheck))
	} else {
		opts = append(opts, elastic.SetHealthcheck(false))
	}
	if cfg.Elastic.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Elastic.Username, cfg.Elastic.Password))
	}

	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create elastic client: %w", err)
	}

	log.Info("elasticsearch connected",
		zap.String("url", cfg.Elastic.URL),
		zap.String("index", cfg.Elastic.Index),
	)
	return client, nil
}

// EnsureIndex 索引不存在时按映射创建
func EnsureIndex(ctx context.Context, client *elastic.Client, index string) error {
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	if exists {
		return nil
	}

	if _, err := client.CreateIndex(index).BodyString(indexMapping).Do(ctx); err != nil {
		// 多个实例同时启动时可能已被其他实例创建
		if elastic.IsStatusCode(err, 400) {
			if exists, _ := client.IndexExists(index).Do(ctx); exists {
				return nil
			}
		}
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}
