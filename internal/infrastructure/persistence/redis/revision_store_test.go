package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// newTestClient 连接BOOKSHELF_TEST_REDIS_ADDR指定的Redis,未设置时跳过
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("BOOKSHELF_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BOOKSHELF_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRevisionStore(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "test:revision:" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), key) })

	var store listing.RevisionSource = NewRevisionStore(client, key)

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, listing.Revision(0), cur)

	next, err := store.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, listing.Revision(1), next)

	// 另一个实例看到同一个版本号
	other := NewRevisionStore(client, key)
	cur, err = other.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, listing.Revision(1), cur)
}

func TestRevisionStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRevisionStore(client, "")

	_, err := store.Current(context.Background())
	assert.Error(t, err)
	_, err = store.Bump(context.Background())
	assert.Error(t, err)
}
