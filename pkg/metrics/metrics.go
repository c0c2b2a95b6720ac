// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分组
//
//  1. HTTP指标：请求总数、耗时、处理中的请求数（由middleware.Metrics记录）
//  2. 列表缓存指标：拉取次数/耗时、被取代的拉取、缓存记录数、版本号递增次数
//  3. 熔断器指标：状态、请求结果
//  4. 消息队列指标：失效事件的发布与消费
//
// # 使用方式
//
//	// 程序启动时初始化一次
//	metrics.InitMetrics()
//
//	// gin路由暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// # 命名规范
//
//   - Counter以`_total`结尾：catalog_fetches_total
//   - Histogram以单位结尾：catalog_fetch_duration_seconds
//   - Gauge使用当前状态：catalog_cached_records
//
// 未调用InitMetrics时，catalog相关的便捷函数直接返回（单元测试不需要注册指标）。
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// once 防止重复注册
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 列表缓存指标

	// CatalogFetchesTotal 列表拉取次数（Counter）
	// 标签：result（success/failure/superseded）
	CatalogFetchesTotal *prometheus.CounterVec

	// CatalogFetchDuration 列表拉取耗时（Histogram）
	CatalogFetchDuration prometheus.Histogram

	// CatalogCachedRecords 缓存中的图书数量（Gauge）
	CatalogCachedRecords prometheus.Gauge

	// CatalogRevisionBumps 版本号递增次数（Counter）
	// 标签：reason（created/updated/deleted/refreshed/remote）
	CatalogRevisionBumps *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure/skipped）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 使用promauto注册到默认Registry，多次调用只注册一次
func InitMetrics() {
	once.Do(register)
}

func register() {
	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 列表缓存指标
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "列表拉取次数",
		},
		[]string{"result"},
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "catalog_fetch_duration_seconds",
			Help: "列表拉取耗时（秒）",
			// 全量拉取，桶设置比HTTP略宽
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	CatalogCachedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cached_records",
			Help: "列表缓存中的图书数量",
		},
	)

	CatalogRevisionBumps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_revision_bumps_total",
			Help: "数据版本号递增次数",
		},
		[]string{"reason"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}

// =========================================
// 通用便捷函数
// =========================================

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// =========================================
// 业务便捷函数（未初始化时为空操作）
// =========================================

// ObserveCatalogFetch 记录一次被应用的列表拉取
// result: success/failure
func ObserveCatalogFetch(result string, elapsed time.Duration) {
	if CatalogFetchesTotal == nil {
		return
	}
	CatalogFetchesTotal.WithLabelValues(result).Inc()
	CatalogFetchDuration.Observe(elapsed.Seconds())
}

// CatalogFetchSuperseded 记录一次被后续拉取取代的结果
func CatalogFetchSuperseded() {
	if CatalogFetchesTotal == nil {
		return
	}
	CatalogFetchesTotal.WithLabelValues("superseded").Inc()
}

// SetCatalogRecords 更新缓存记录数
func SetCatalogRecords(n int) {
	if CatalogCachedRecords == nil {
		return
	}
	CatalogCachedRecords.Set(float64(n))
}

// CatalogRevisionBumped 记录一次版本号递增
func CatalogRevisionBumped(reason string) {
	if CatalogRevisionBumps == nil {
		return
	}
	CatalogRevisionBumps.WithLabelValues(reason).Inc()
}

// CircuitBreakerResult 记录熔断器请求结果
func CircuitBreakerResult(name, result string) {
	if CircuitBreakerRequests == nil {
		return
	}
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// CircuitBreakerStateChanged 更新熔断器状态
func CircuitBreakerStateChanged(name string, state int) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// MessagePublished 记录一条消息发布
func MessagePublished(exchange, routingKey string) {
	if MessagesPublishedTotal == nil {
		return
	}
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

// MessageConsumed 记录一条消息消费结果
func MessageConsumed(queue, result string) {
	if MessagesConsumedTotal == nil {
		return
	}
	MessagesConsumedTotal.WithLabelValues(queue, result).Inc()
}
