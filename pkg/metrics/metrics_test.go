package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if CatalogFetchesTotal == nil {
		t.Error("CatalogFetchesTotal未初始化")
	}
	if CatalogCachedRecords == nil {
		t.Error("CatalogCachedRecords未初始化")
	}
}

// TestObserveCatalogFetch 测试列表拉取指标
func TestObserveCatalogFetch(t *testing.T) {
	InitMetrics()

	success := map[string]string{"result": "success"}
	before := getCounterVecValue(t, CatalogFetchesTotal, success)
	countBefore := getHistogramCount(t, CatalogFetchDuration)

	ObserveCatalogFetch("success", 20*time.Millisecond)
	ObserveCatalogFetch("success", 30*time.Millisecond)

	if got := getCounterVecValue(t, CatalogFetchesTotal, success) - before; got != 2 {
		t.Errorf("拉取次数错误: expected=2, got=%f", got)
	}
	if got := getHistogramCount(t, CatalogFetchDuration) - countBefore; got != 2 {
		t.Errorf("耗时观测次数错误: expected=2, got=%d", got)
	}
}

// TestCatalogFetchSuperseded 测试被取代的拉取计数
func TestCatalogFetchSuperseded(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"result": "superseded"}
	before := getCounterVecValue(t, CatalogFetchesTotal, labels)

	CatalogFetchSuperseded()

	if got := getCounterVecValue(t, CatalogFetchesTotal, labels) - before; got != 1 {
		t.Errorf("被取代次数错误: expected=1, got=%f", got)
	}
}

// TestSetCatalogRecords 测试缓存记录数Gauge
func TestSetCatalogRecords(t *testing.T) {
	InitMetrics()

	SetCatalogRecords(10)
	if got := getGaugeValue(t, CatalogCachedRecords); got != 10 {
		t.Errorf("缓存记录数错误: expected=10, got=%f", got)
	}

	SetCatalogRecords(0)
	if got := getGaugeValue(t, CatalogCachedRecords); got != 0 {
		t.Errorf("缓存记录数错误: expected=0, got=%f", got)
	}
}

// TestCatalogRevisionBumped 测试版本号递增计数
func TestCatalogRevisionBumped(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"reason": "created"}
	before := getCounterVecValue(t, CatalogRevisionBumps, labels)

	CatalogRevisionBumped("created")
	CatalogRevisionBumped("deleted")

	if got := getCounterVecValue(t, CatalogRevisionBumps, labels) - before; got != 1 {
		t.Errorf("版本号递增次数错误: expected=1, got=%f", got)
	}
}

// TestCircuitBreakerMetrics 测试熔断器指标
func TestCircuitBreakerMetrics(t *testing.T) {
	InitMetrics()

	CircuitBreakerStateChanged("record-store", 1)
	if got := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "record-store"}); got != 1 {
		t.Errorf("熔断器状态错误: expected=1, got=%f", got)
	}

	labels := map[string]string{"name": "record-store", "result": "rejected"}
	before := getCounterVecValue(t, CircuitBreakerRequests, labels)
	CircuitBreakerResult("record-store", "rejected")
	if got := getCounterVecValue(t, CircuitBreakerRequests, labels) - before; got != 1 {
		t.Errorf("熔断器请求计数错误: expected=1, got=%f", got)
	}
}

// TestHTTPRequestScenario 模拟HTTP请求处理
func TestHTTPRequestScenario(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	labels := map[string]string{"method": "GET", "path": "/api/v1/books", "status": "200"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)

	for i := 0; i < 5; i++ {
		IncGauge(HTTPRequestsInProgress)
		ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/v1/books"}, 0.002)
		IncCounterVec(HTTPRequestsTotal, labels)
		DecGauge(HTTPRequestsInProgress)
	}

	if got := getGaugeValue(t, HTTPRequestsInProgress); got != 0 {
		t.Errorf("正在处理的请求数错误: expected=0, got=%f", got)
	}
	if got := getCounterVecValue(t, HTTPRequestsTotal, labels) - before; got != 5 {
		t.Errorf("请求总数错误: expected=5, got=%f", got)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := gaugeVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
