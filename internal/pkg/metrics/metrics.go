package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 予約結果のラベル値
const (
	ResultSuccess     = "success"
	ResultUnavailable = "unavailable"
	ResultRejected    = "rejected"
	ResultLockFailed  = "lock_failed"
	ResultError       = "error"
)

// Metrics はアプリケーションのメトリクスを管理する
// メソッドは nil レシーバでも安全に呼べる
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約作成の試行数（result: success, unavailable, rejected, lock_failed, error）
	BookingsTotal *prometheus.CounterVec

	// 客室ロックの取得待ち時間（status: success/failed）
	RoomLockDuration *prometheus.HistogramVec

	// 直列化失敗によるトランザクション再試行の回数
	BookingTxRetriesTotal prometheus.Counter

	// 状態ごとの予約数（status: confirmed, cancelled）
	ActiveBookings *prometheus.GaugeVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking attempts by result",
			},
			[]string{"result"},
		),
		RoomLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "room_lock_duration_seconds",
				Help:    "Time spent waiting for a room lock",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"status"},
		),
		BookingTxRetriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "booking_tx_retries_total",
				Help: "Total number of booking transactions retried after a serialization conflict",
			},
		),
		ActiveBookings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "active_bookings",
				Help: "Current number of bookings by status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.RoomLockDuration,
		m.BookingTxRetriesTotal,
		m.ActiveBookings,
	)

	return m
}

// RecordBooking は予約作成の結果を記録する
func (m *Metrics) RecordBooking(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// ObserveRoomLock は客室ロックの取得待ち時間を記録する
func (m *Metrics) ObserveRoomLock(acquired bool, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if !acquired {
		status = "failed"
	}
	m.RoomLockDuration.WithLabelValues(status).Observe(d.Seconds())
}

// RecordTxRetry はトランザクション再試行を1回記録する
func (m *Metrics) RecordTxRetry() {
	if m == nil {
		return
	}
	m.BookingTxRetriesTotal.Inc()
}

// SetActiveBookings は状態ごとの予約数を設定する
func (m *Metrics) SetActiveBookings(status string, n int) {
	if m == nil {
		return
	}
	m.ActiveBookings.WithLabelValues(status).Set(float64(n))
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
