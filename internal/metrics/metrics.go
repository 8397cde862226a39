// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordFollowCreated()
	RecordFollowDeleted()
	RecordBookmarkCreated()
	RecordBookmarkDeleted()
	RecordDuplicateConflict(kind string)
	RecordCascadeLatency(kind string, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus         *prometheus.CounterVec
	followCreated      prometheus.Counter
	followDeleted      prometheus.Counter
	bookmarkCreated    prometheus.Counter
	bookmarkDeleted    prometheus.Counter
	duplicateConflicts *prometheus.CounterVec
	cascadeLatency     *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yarnia_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		followCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yarnia_follow_created_total",
			Help: "作成されたフォローエッジの合計数",
		}),
		followDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yarnia_follow_deleted_total",
			Help: "削除されたフォローエッジの合計数",
		}),
		bookmarkCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yarnia_bookmark_created_total",
			Help: "作成されたブックマークエッジの合計数",
		}),
		bookmarkDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yarnia_bookmark_deleted_total",
			Help: "削除されたブックマークエッジの合計数",
		}),
		duplicateConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yarnia_duplicate_conflict_total",
			Help: "一意制約により拒否されたエッジ作成の合計数",
		}, []string{"kind"}),
		cascadeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yarnia_cascade_delete_latency_seconds",
			Help:    "カスケード削除トランザクションのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.followCreated,
		c.followDeleted,
		c.bookmarkCreated,
		c.bookmarkDeleted,
		c.duplicateConflicts,
		c.cascadeLatency,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordFollowCreated はフォローエッジの作成を記録する。
func (c *Collector) RecordFollowCreated() {
	c.followCreated.Inc()
}

// RecordFollowDeleted はフォローエッジの削除を記録する。
func (c *Collector) RecordFollowDeleted() {
	c.followDeleted.Inc()
}

// RecordBookmarkCreated はブックマークエッジの作成を記録する。
func (c *Collector) RecordBookmarkCreated() {
	c.bookmarkCreated.Inc()
}

// RecordBookmarkDeleted はブックマークエッジの削除を記録する。
func (c *Collector) RecordBookmarkDeleted() {
	c.bookmarkDeleted.Inc()
}

// RecordDuplicateConflict は一意制約による作成拒否を記録する。
// kindは"follow"または"bookmark"。
func (c *Collector) RecordDuplicateConflict(kind string) {
	c.duplicateConflicts.WithLabelValues(kind).Inc()
}

// RecordCascadeLatency はカスケード削除のレイテンシを記録する。
// kindは"user"または"story"。
func (c *Collector) RecordCascadeLatency(kind string, duration time.Duration) {
	c.cascadeLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
