package redis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
)

// releaseTimeout はロック解放に使う独立したタイムアウト
// 呼び出し元の ctx がキャンセル済みでも解放を試みる
const releaseTimeout = 2 * time.Second

// RoomLockerConfig は客室ロックの取得設定
type RoomLockerConfig struct {
	TTL        time.Duration
	Retries    int
	RetryDelay time.Duration
}

// RoomLocker は Redis の分散ロックで客室単位の排他を提供する
// 複数プロセスで同じ客室の予約処理を直列化する
type RoomLocker struct {
	locks Locker
	cfg   RoomLockerConfig
}

func NewRoomLocker(locks Locker, cfg RoomLockerConfig) *RoomLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	return &RoomLocker{locks: locks, cfg: cfg}
}

// LockRoom は lock:room:<id> のロックを取得し、解放用の関数を返す
func (l *RoomLocker) LockRoom(ctx context.Context, roomID string) (func(), error) {
	lock, err := l.locks.AcquireLockWithRetry(ctx, roomLockKey(roomID), l.cfg.TTL, l.cfg.Retries, l.cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil {
			// TTL 切れで既に他者が保持している場合も含む
			logger.Warn("客室ロックの解放に失敗",
				zap.String("room_id", roomID),
				zap.Error(err),
			)
		}
	}, nil
}

func roomLockKey(roomID string) string {
	return "room:" + roomID
}
