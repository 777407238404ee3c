package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 任务操作计数
	TaskOpsCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_ops_count",
			Help: "Total number of task operations",
		},
		[]string{"op"}, // op: create, delete, delete_denied
	)

	// 登录计数
	LoginCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_count",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // outcome: success, failed
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementTaskOp 增加任务操作计数
func IncrementTaskOp(op string) {
	TaskOpsCount.WithLabelValues(op).Inc()
}

// IncrementLogin 增加登录计数
func IncrementLogin(outcome string) {
	LoginCount.WithLabelValues(outcome).Inc()
}
