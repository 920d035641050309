package clock

import (
	"sync"
	"time"
)

// Clock は現在時刻の取得元
// 業務ロジックから time.Now を直接呼ばず、テストで時刻を固定できるようにする
type Clock interface {
	Now() time.Time
}

// System は実時間の Clock
type System struct{}

// Now は現在時刻（UTC）を返す
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed はテスト用の手動で進める Clock
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed は指定時刻で停止した Clock を作成する
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set は現在時刻を変更する
func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance は現在時刻を d だけ進める
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
