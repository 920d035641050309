package application

import (
	"context"
	"errors"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// RetryPolicy はトランザクション競合時の再試行設定
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy はデフォルトの再試行設定を返す
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 20 * time.Millisecond, MaxDelay: 500 * time.Millisecond}
}

// Delay は attempt 回目（1始まり）の再試行までの待ち時間を返す
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// retryOnConflict は fn が transaction.ErrConflict を返した場合のみ指数バックオフで再試行する
// それ以外のエラーは再試行せずそのまま返す
func retryOnConflict(ctx context.Context, p RetryPolicy, onRetry func(attempt int, err error), fn func() error) error {
	err := fn()
	for attempt := 1; attempt <= p.MaxRetries; attempt++ {
		if err == nil || !errors.Is(err, transaction.ErrConflict) {
			return err
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay(attempt)):
		}
		err = fn()
	}
	return err
}
