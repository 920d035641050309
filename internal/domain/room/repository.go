package room

import "context"

// Repository は客室リポジトリのインターフェース
type Repository interface {
	// Create は新しい客室を作成する（同一ホテル内で部屋番号重複時は ErrRoomAlreadyExists）
	Create(ctx context.Context, room *Room) error

	// GetByID はIDから客室を取得する（存在しない場合は ErrRoomNotFound）
	GetByID(ctx context.Context, id string) (*Room, error)

	// GetByHotelID はホテルの客室一覧を取得する
	GetByHotelID(ctx context.Context, hotelID string) ([]*Room, error)
}
