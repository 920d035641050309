package booking

import "errors"

// Booking ドメインのエラー定義
// いずれも呼び出し側へそのまま返す想定の業務エラーで、再試行の対象ではない
var (
	ErrBookingNotFound            = errors.New("予約が見つかりません")
	ErrInvalidCapacity            = errors.New("宿泊人数が上限を超えています")
	ErrInvalidRequest             = errors.New("チェックアウト日がチェックイン日より前です")
	ErrInvalidDates               = errors.New("宿泊日が不正です")
	ErrRoomNotAvailable           = errors.New("指定期間の客室は予約済みです")
	ErrForbidden                  = errors.New("この予約を操作する権限がありません")
	ErrAlreadyCancelled           = errors.New("予約は既にキャンセルされています")
	ErrCancellationDeadlinePassed = errors.New("キャンセル期限を過ぎています")
	ErrUserIDRequired             = errors.New("ユーザーIDは必須です")
	ErrRoomIDRequired             = errors.New("客室IDは必須です")
	ErrInvalidPrice               = errors.New("料金は0以上である必要があります")
	ErrInvalidStatus              = errors.New("予約状態が不正です")
)
