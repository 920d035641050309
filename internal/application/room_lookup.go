package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
)

// RoomCache は客室情報のキャッシュ
// Get はキャッシュにない場合もエラーを返す
type RoomCache interface {
	Get(ctx context.Context, roomID string) (*room.Room, error)
	Set(ctx context.Context, r *room.Room, ttl time.Duration) error
}

// CachedRoomLookup はキャッシュを優先して客室を取得する RoomLookup
// キャッシュの障害は取得結果に影響させない
type CachedRoomLookup struct {
	repo  room.Repository
	cache RoomCache
	ttl   time.Duration
}

func NewCachedRoomLookup(repo room.Repository, cache RoomCache, ttl time.Duration) *CachedRoomLookup {
	return &CachedRoomLookup{repo: repo, cache: cache, ttl: ttl}
}

func (l *CachedRoomLookup) GetByID(ctx context.Context, id string) (*room.Room, error) {
	if r, err := l.cache.Get(ctx, id); err == nil && r != nil {
		return r, nil
	}

	r, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, r, l.ttl); err != nil {
		logger.Debug("客室キャッシュの更新に失敗", zap.String("room_id", id), zap.Error(err))
	}
	return r, nil
}

var _ RoomLookup = (*CachedRoomLookup)(nil)
