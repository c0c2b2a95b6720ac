package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// DefaultRevisionKey 版本号默认键名
const DefaultRevisionKey = "catalog:revision"

// RevisionStore 基于Redis的版本号(多实例共享)
// 设计说明:
// 1. Bump使用INCR,多个实例并发递增也不会丢失
// 2. 键不存在时版本号为0
// 3. 不设置过期时间,键被清除后版本号回到0,各实例的缓存会重新拉取一次
type RevisionStore struct {
	client redis.Cmdable
	key    string
}

// NewRevisionStore 创建版本号存储
func NewRevisionStore(client redis.Cmdable, key string) *RevisionStore {
	if key == "" {
		key = DefaultRevisionKey
	}
	return &RevisionStore{client: client, key: key}
}

// Current 当前版本号
func (s *RevisionStore) Current(ctx context.Context) (listing.Revision, error) {
	n, err := s.client.Get(ctx, s.key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", s.key, err)
	}
	return listing.Revision(n), nil
}

// Bump 递增版本号
func (s *RevisionStore) Bump(ctx context.Context) (listing.Revision, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", s.key, err)
	}
	return listing.Revision(n), nil
}
