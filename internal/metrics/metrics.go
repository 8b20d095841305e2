package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 交易创建数
	transactionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Total number of transactions created",
		},
	)

	// 审批决策数
	approvalDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Total number of approval decisions",
		},
		[]string{"decision"}, // approved, rejected, denied
	)

	// 交易状态分布
	transactionsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transactions_by_status",
			Help: "Number of transactions by status",
		},
		[]string{"status"},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var registerOnce sync.Once

// Register 注册所有指标
// 重复调用安全,只注册一次
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			transactionsCreatedTotal,
			approvalDecisionsTotal,
			transactionsByStatus,
			databaseConnectionsActive,
			databaseConnectionsIdle,
			databaseConnectionsMax,
		)
	})
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求指标
func RecordAPIRequest(method, path string, status int, duration float64) {
	apiRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordTransactionCreated 记录交易创建
func RecordTransactionCreated() {
	transactionsCreatedTotal.Inc()
}

// RecordApprovalDecision 记录审批决策
func RecordApprovalDecision(decision string) {
	approvalDecisionsTotal.WithLabelValues(decision).Inc()
}

// SetTransactionsByStatus 更新交易状态分布
func SetTransactionsByStatus(status string, count float64) {
	transactionsByStatus.WithLabelValues(status).Set(count)
}

// UpdateDatabaseStats 更新数据库连接池指标
func UpdateDatabaseStats(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))
}
