package messaging

import (
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

// OpenPublisher 按mq配置连接RabbitMQ并创建失效事件发布者
// 调用方负责在mq.enabled为false时不调用
func OpenPublisher(cfg config.MQConfig, log *zap.Logger) (*InvalidationPublisher, func(), error) {
	publisher, err := mq.NewPublisher(cfg.URL, cfg.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close mq publisher failed", zap.Error(err))
		}
	}
	return NewInvalidationPublisher(publisher), cleanup, nil
}

// OpenListener 声明队列并绑定catalog.*,返回失效事件监听者
func OpenListener(cfg config.MQConfig, handler RemoteHandler, log *zap.Logger) (*Listener, func(), error) {
	consumer, err := mq.NewConsumer(mq.ConsumerConfig{
		URL:          cfg.URL,
		Exchange:     cfg.Exchange,
		ExchangeType: mq.ExchangeTopic,
		Queue:        cfg.Queue,
		RoutingKeys:  []string{BindingKey},
		// 失效事件处理失败不重新入队,之后的写入会再次递增版本号
		Requeue: false,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := consumer.Close(); err != nil {
			log.Warn("close mq consumer failed", zap.Error(err))
		}
	}
	return NewListener(consumer, handler, log), cleanup, nil
}
