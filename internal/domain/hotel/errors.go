package hotel

import "errors"

// Hotel ドメインのエラー定義
var (
	ErrHotelNotFound     = errors.New("ホテルが見つかりません")
	ErrOwnerIDRequired   = errors.New("所有者IDは必須です")
	ErrHotelNameRequired = errors.New("ホテル名は必須です")
	ErrCityRequired      = errors.New("都市は必須です")
	ErrCountryRequired   = errors.New("国は必須です")
	ErrForbidden         = errors.New("このホテルを操作する権限がありません")
)
