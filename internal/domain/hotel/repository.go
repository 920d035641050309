package hotel

import "context"

// Repository はホテルリポジトリのインターフェース
type Repository interface {
	// Create は新しいホテルを作成する
	Create(ctx context.Context, hotel *Hotel) error

	// GetByID はIDからホテルを取得する
	GetByID(ctx context.Context, id string) (*Hotel, error)

	// Search は条件に一致するホテル一覧を取得する
	Search(ctx context.Context, filter SearchFilter) ([]*Summary, error)
}
