package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
)

// BookingCounter は状態ごとの予約数を集計するインターフェース
type BookingCounter interface {
	CountByStatus(ctx context.Context) (map[booking.Status]int, error)
}

// StatsSink は集計結果の出力先（Prometheus のゲージなど）
type StatsSink interface {
	SetActiveBookings(status string, n int)
}

// BookingStatsReporter は予約数を定期的に集計してメトリクスへ反映するワーカー
type BookingStatsReporter struct {
	counter  BookingCounter
	sink     StatsSink
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewBookingStatsReporter は新しいレポーターを作成
func NewBookingStatsReporter(counter BookingCounter, sink StatsSink, interval time.Duration) *BookingStatsReporter {
	return &BookingStatsReporter{
		counter:  counter,
		sink:     sink,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はレポーターを開始
// 起動直後に1回集計し、以降は interval ごとに集計する
func (r *BookingStatsReporter) Start(ctx context.Context) {
	logger.Info("予約数レポーター開始", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	r.report(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("予約数レポーター停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("予約数レポーター停止（シグナル受信）")
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

// Stop はレポーターを停止し、終了を待つ
func (r *BookingStatsReporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	<-r.doneCh
}

// report は予約数を集計してメトリクスに反映
func (r *BookingStatsReporter) report(ctx context.Context) {
	log := logger.Get()

	counts, err := r.counter.CountByStatus(ctx)
	if err != nil {
		log.Error("予約数の集計失敗", zap.Error(err))
		return
	}

	for status, n := range counts {
		r.sink.SetActiveBookings(string(status), n)
	}
	log.Debug("予約数を更新",
		zap.Int("confirmed", counts[booking.StatusConfirmed]),
		zap.Int("cancelled", counts[booking.StatusCancelled]),
	)
}
