package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// OverlapFinder は期間の重なる未キャンセル予約を探す
type OverlapFinder interface {
	FindOverlapping(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) ([]*booking.Booking, error)
}

// AvailabilityChecker は客室の空室確認を行う
// 単体では並行予約に対して安全ではないため、作成と同じトランザクション内で呼ぶこと
type AvailabilityChecker struct {
	finder OverlapFinder
}

func NewAvailabilityChecker(finder OverlapFinder) *AvailabilityChecker {
	return &AvailabilityChecker{finder: finder}
}

// IsAvailable は期間が重なる確定予約がなければ true を返す
// excludeID に指定した予約は重複判定から除外する
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) (bool, error) {
	found, err := c.finder.FindOverlapping(ctx, tx, roomID, stay, excludeID)
	if err != nil {
		return false, fmt.Errorf("空室確認に失敗: %w", err)
	}
	for _, b := range found {
		// ストレージ側の絞り込みに加えて同じ述語で再確認する
		if b.ID != excludeID && b.IsConfirmed() && b.Stay.Overlaps(stay) {
			return false, nil
		}
	}
	return true, nil
}
