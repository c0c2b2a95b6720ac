// Package messaging 通过RabbitMQ在实例之间传播缓存失效事件
package messaging

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/listing"
)

// routingPrefix 失效事件的routing key前缀(catalog.created、catalog.deleted……)
const routingPrefix = "catalog."

// BindingKey 监听全部失效事件的绑定键
const BindingKey = routingPrefix + "*"

// RoutingKey 事件对应的routing key
func RoutingKey(reason listing.InvalidationReason) string {
	return routingPrefix + string(reason)
}

// MessagePublisher 底层消息发布接口(由mq.Publisher实现)
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// InvalidationPublisher 失效事件发布者
type InvalidationPublisher struct {
	publisher MessagePublisher
}

// NewInvalidationPublisher 创建失效事件发布者
func NewInvalidationPublisher(publisher MessagePublisher) *InvalidationPublisher {
	return &InvalidationPublisher{publisher: publisher}
}

// PublishInvalidation 发布失效事件
func (p *InvalidationPublisher) PublishInvalidation(ctx context.Context, event listing.Invalidation) error {
	return p.publisher.Publish(ctx, RoutingKey(event.Reason), event)
}
