package room

import "errors"

// Room ドメインのエラー定義
var (
	ErrRoomNotFound       = errors.New("客室が見つかりません")
	ErrRoomAlreadyExists  = errors.New("同じ部屋番号の客室が既に存在します")
	ErrHotelIDRequired    = errors.New("ホテルIDは必須です")
	ErrRoomNumberRequired = errors.New("部屋番号は必須です")
	ErrRoomTypeRequired   = errors.New("客室タイプは必須です")
	ErrInvalidPrice       = errors.New("1泊料金は0以上である必要があります")
	ErrInvalidOccupancy   = errors.New("定員は1以上である必要があります")
)
