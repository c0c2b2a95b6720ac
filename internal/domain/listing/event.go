package listing

import "time"

// InvalidationReason 版本号递增原因
type InvalidationReason string

const (
	ReasonCreated   InvalidationReason = "created"
	ReasonUpdated   InvalidationReason = "updated"
	ReasonDeleted   InvalidationReason = "deleted"
	ReasonRefreshed InvalidationReason = "refreshed"
	ReasonRemote    InvalidationReason = "remote"
)

// Invalidation 失效事件
// 写操作或手动刷新递增版本号后发布,其他实例收到后递增本地版本号
type Invalidation struct {
	Revision   Revision           `json:"revision"`
	Reason     InvalidationReason `json:"reason"`
	BookID     string             `json:"book_id,omitempty"`
	Origin     string             `json:"origin"`
	OccurredAt time.Time          `json:"occurred_at"`
}
