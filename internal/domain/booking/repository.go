package booking

import (
	"context"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// FindOverlapping は客室の未キャンセル予約のうち期間が重なるものを取得する（トランザクション必須）
	// excludeID が空でなければその予約は除外する
	FindOverlapping(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) ([]*Booking, error)

	// Create は確定状態の予約を作成する（トランザクション必須）
	// 重複チェックと同一トランザクション内で呼ぶこと
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// UpdateStatus は確定状態の予約の状態を更新する（トランザクション必須）
	// 既にキャンセル済みの場合は ErrAlreadyCancelled
	UpdateStatus(ctx context.Context, tx transaction.Tx, id string, status Status, cancelledAt time.Time) (*Booking, error)

	// ListByUser はユーザーの予約一覧を新しい順に取得する（status が空なら全件）
	ListByUser(ctx context.Context, userID string, status Status) ([]*Details, error)

	// CountByStatus は状態ごとの予約数を取得する
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
