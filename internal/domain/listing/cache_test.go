package listing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// ====================
// 测试用数据源
// ====================

// stubSource 立即返回预设结果
type stubSource struct {
	mu      sync.Mutex
	records []book.Book
	err     error
	calls   atomic.Int32
}

func (s *stubSource) set(records []book.Book, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records, s.err = records, err
}

func (s *stubSource) ListAll(ctx context.Context) ([]book.Book, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]book.Book(nil), s.records...), nil
}

type fetchResult struct {
	records []book.Book
	err     error
}

// gatedSource 每次调用都阻塞,直到测试通过reply放行
type gatedSource struct {
	pending chan chan fetchResult
}

func newGatedSource() *gatedSource {
	return &gatedSource{pending: make(chan chan fetchResult)}
}

func (s *gatedSource) ListAll(ctx context.Context) ([]book.Book, error) {
	reply := make(chan fetchResult, 1)
	select {
	case s.pending <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.records, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// next 等待下一次拉取进入数据源
func (s *gatedSource) next(t *testing.T) chan fetchResult {
	t.Helper()
	select {
	case reply := <-s.pending:
		return reply
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return nil
	}
}

type refreshOutcome struct {
	snap Snapshot
	err  error
}

func refreshAsync(c *Cache, rev Revision) <-chan refreshOutcome {
	out := make(chan refreshOutcome, 1)
	go func() {
		snap, err := c.Refresh(context.Background(), rev)
		out <- refreshOutcome{snap, err}
	}()
	return out
}

func await(t *testing.T, ch <-chan refreshOutcome) refreshOutcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh")
		return refreshOutcome{}
	}
}

// ====================
// 测试用例
// ====================

func TestCache_InitiallyEmpty(t *testing.T) {
	c := NewCache(&stubSource{}, CacheConfig{})

	snap := c.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Records)
	assert.NoError(t, c.Err())
}

func TestCache_RefreshReplacesWholesale(t *testing.T) {
	src := &stubSource{}
	c := NewCache(src, CacheConfig{})
	ctx := context.Background()

	src.set(sampleBooks(), nil)
	snap, err := c.Refresh(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 5)
	assert.True(t, snap.Loaded)
	assert.Equal(t, Revision(1), snap.Revision)

	// 第二次拉取只返回两本,旧数据不应残留
	src.set(numbered(2), nil)
	snap, err = c.Refresh(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b00", "b01"}, ids(snap.Records))
	assert.Equal(t, Revision(2), snap.Revision)
}

func TestCache_FailureKeepsPreviousRecords(t *testing.T) {
	src := &stubSource{}
	c := NewCache(src, CacheConfig{})
	ctx := context.Background()

	src.set(sampleBooks(), nil)
	_, err := c.Refresh(ctx, 1)
	require.NoError(t, err)

	boom := errors.New("connection refused")
	src.set(nil, boom)
	snap, err := c.Refresh(ctx, 2)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, snap.Records, 5)
	assert.Equal(t, Revision(1), snap.Revision)
	assert.ErrorIs(t, c.Err(), boom)

	// 恢复后错误被清除
	src.set(numbered(1), nil)
	_, err = c.Refresh(ctx, 2)
	require.NoError(t, err)
	assert.NoError(t, c.Err())
}

func TestCache_FirstFetchFailure(t *testing.T) {
	boom := errors.New("store down")
	c := NewCache(&stubSource{err: boom}, CacheConfig{})

	snap, err := c.Ensure(context.Background(), 0)
	assert.ErrorIs(t, err, boom)
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Records)
}

func TestCache_EnsureSkipsFetchWhenRevisionMatches(t *testing.T) {
	src := &stubSource{records: sampleBooks()}
	c := NewCache(src, CacheConfig{})
	ctx := context.Background()

	_, err := c.Ensure(ctx, 3)
	require.NoError(t, err)
	_, err = c.Ensure(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	_, err = c.Ensure(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCache_EnsureRetriesAfterFailure(t *testing.T) {
	src := &stubSource{err: errors.New("temporary")}
	c := NewCache(src, CacheConfig{})
	ctx := context.Background()

	_, err := c.Ensure(ctx, 1)
	require.Error(t, err)

	src.set(sampleBooks(), nil)
	snap, err := c.Ensure(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 5)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCache_OlderFetchFinishingLastIsDiscarded(t *testing.T) {
	src := newGatedSource()
	c := NewCache(src, CacheConfig{})

	first := refreshAsync(c, 1)
	firstReply := src.next(t)
	second := refreshAsync(c, 2)
	secondReply := src.next(t)

	// 后发起的先返回
	secondReply <- fetchResult{records: numbered(2)}
	got := await(t, second)
	require.NoError(t, got.err)
	assert.Equal(t, []string{"b00", "b01"}, ids(got.snap.Records))

	// 先发起的后返回,结果被丢弃
	firstReply <- fetchResult{records: sampleBooks()}
	got = await(t, first)
	require.NoError(t, got.err)
	assert.Equal(t, []string{"b00", "b01"}, ids(got.snap.Records))
	assert.Equal(t, Revision(2), got.snap.Revision)

	assert.Equal(t, []string{"b00", "b01"}, ids(c.Snapshot().Records))
}

func TestCache_SupersededCallerWaitsForLatest(t *testing.T) {
	src := newGatedSource()
	c := NewCache(src, CacheConfig{})

	first := refreshAsync(c, 1)
	firstReply := src.next(t)
	second := refreshAsync(c, 2)
	secondReply := src.next(t)

	// 旧拉取先返回,不应被应用
	firstReply <- fetchResult{records: sampleBooks()}
	select {
	case <-first:
		t.Fatal("superseded fetch returned before the latest fetch finished")
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, c.Snapshot().Loaded)

	secondReply <- fetchResult{records: numbered(3)}
	for _, ch := range []<-chan refreshOutcome{first, second} {
		got := await(t, ch)
		require.NoError(t, got.err)
		assert.Equal(t, []string{"b00", "b01", "b02"}, ids(got.snap.Records))
	}
}

func TestCache_SupersededFailureDoesNotSetError(t *testing.T) {
	src := newGatedSource()
	c := NewCache(src, CacheConfig{})

	first := refreshAsync(c, 1)
	firstReply := src.next(t)
	second := refreshAsync(c, 2)
	secondReply := src.next(t)

	secondReply <- fetchResult{records: numbered(1)}
	require.NoError(t, await(t, second).err)

	firstReply <- fetchResult{err: errors.New("late failure")}
	got := await(t, first)
	assert.NoError(t, got.err)
	assert.NoError(t, c.Err())
	assert.Equal(t, 1, c.State().Records)
}

func TestCache_FetchTimeout(t *testing.T) {
	src := newGatedSource()
	c := NewCache(src, CacheConfig{FetchTimeout: 20 * time.Millisecond})

	_, err := c.Refresh(context.Background(), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, c.State().Loaded)
}

func TestCache_SnapshotIsCopy(t *testing.T) {
	c := NewCache(&stubSource{records: sampleBooks()}, CacheConfig{})
	snap, err := c.Refresh(context.Background(), 1)
	require.NoError(t, err)

	snap.Records[0].Title = "changed"
	assert.Equal(t, "The Hobbit", c.Snapshot().Records[0].Title)
}

func TestCache_State(t *testing.T) {
	c := NewCache(&stubSource{records: sampleBooks()}, CacheConfig{})
	_, err := c.Refresh(context.Background(), 7)
	require.NoError(t, err)

	st := c.State()
	assert.True(t, st.Loaded)
	assert.Equal(t, 0, st.Loading)
	assert.Equal(t, Revision(7), st.Revision)
	assert.Equal(t, 5, st.Records)
	assert.Equal(t, uint64(1), st.Generation)
	assert.False(t, st.FetchedAt.IsZero())
}

func TestLocalRevision(t *testing.T) {
	r := NewLocalRevision()
	ctx := context.Background()

	cur, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, Revision(0), cur)

	next, err := r.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, Revision(1), next)

	cur, _ = r.Current(ctx)
	assert.Equal(t, Revision(1), cur)
}
