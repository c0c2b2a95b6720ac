package listing

import (
	"context"
	"sync/atomic"
)

// Revision 数据版本号
// 每次写操作(新增/编辑/删除)或手动刷新都会递增;
// 列表缓存的版本号与当前版本号不一致时重新拉取
type Revision uint64

// RevisionSource 版本号来源
// 实现:
// - LocalRevision: 进程内原子计数器(单实例)
// - redis.RevisionStore: Redis INCR(多实例共享)
type RevisionSource interface {
	// Current 当前版本号
	Current(ctx context.Context) (Revision, error)

	// Bump 递增版本号并返回新值
	Bump(ctx context.Context) (Revision, error)
}

// LocalRevision 进程内版本号
type LocalRevision struct {
	n atomic.Uint64
}

// NewLocalRevision 创建进程内版本号(初始为0)
func NewLocalRevision() *LocalRevision {
	return &LocalRevision{}
}

// Current 当前版本号
func (r *LocalRevision) Current(context.Context) (Revision, error) {
	return Revision(r.n.Load()), nil
}

// Bump 递增版本号
func (r *LocalRevision) Bump(context.Context) (Revision, error) {
	return Revision(r.n.Add(1)), nil
}
