package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

// RemoteHandler 处理其他实例发布的失效事件(由应用层Invalidator实现)
type RemoteHandler interface {
	HandleRemote(ctx context.Context, event listing.Invalidation) (bool, error)
}

// MessageConsumer 底层消息消费接口(由mq.Consumer实现)
type MessageConsumer interface {
	Consume(ctx context.Context, handler mq.Handler) error
}

// Listener 失效事件监听者
// 设计说明:
// 1. 每个实例使用独占队列,所有实例都能收到事件
// 2. 自己发布的事件由RemoteHandler按origin跳过
// 3. 无法解析的消息直接丢弃
type Listener struct {
	consumer MessageConsumer
	handler  RemoteHandler
	logger   *zap.Logger
}

// NewListener 创建失效事件监听者
func NewListener(consumer MessageConsumer, handler RemoteHandler, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		consumer: consumer,
		handler:  handler,
		logger:   logger.Named("invalidation_listener"),
	}
}

// Run 阻塞监听直到ctx取消
func (l *Listener) Run(ctx context.Context) error {
	l.logger.Info("listening for catalog invalidations")
	return l.consumer.Consume(ctx, l.handle)
}

func (l *Listener) handle(ctx context.Context, routingKey string, body []byte) error {
	var event listing.Invalidation
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", mq.ErrMalformed, err)
	}
	if event.Origin == "" {
		return fmt.Errorf("%w: missing origin", mq.ErrMalformed)
	}

	applied, err := l.handler.HandleRemote(ctx, event)
	if err != nil {
		return err
	}
	if applied {
		l.logger.Debug("remote invalidation",
			zap.String("routing_key", routingKey),
			zap.String("origin", event.Origin),
			zap.Uint64("remote_revision", uint64(event.Revision)),
		)
	}
	return nil
}
