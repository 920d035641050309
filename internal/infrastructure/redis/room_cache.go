package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// cachedRoom はキャッシュに保存する客室の表現
type cachedRoom struct {
	ID            string      `json:"id"`
	HotelID       string      `json:"hotelId"`
	RoomNumber    string      `json:"roomNumber"`
	RoomType      string      `json:"roomType"`
	PricePerNight money.Money `json:"pricePerNight"`
	MaxOccupancy  int         `json:"maxOccupancy"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// RoomCache は客室情報のキャッシュを管理する
// 客室は作成後に変更されないため、無効化は TTL に任せる
type RoomCache struct {
	client *redis.Client
}

// NewRoomCache は新しいRoomCacheインスタンスを作成する
func NewRoomCache(client *redis.Client) *RoomCache {
	return &RoomCache{client: client}
}

// Get は客室をキャッシュから取得する
func (c *RoomCache) Get(ctx context.Context, roomID string) (*room.Room, error) {
	data, err := c.client.Get(ctx, c.roomKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var v cachedRoom
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return &room.Room{
		ID:            v.ID,
		HotelID:       v.HotelID,
		RoomNumber:    v.RoomNumber,
		RoomType:      v.RoomType,
		PricePerNight: v.PricePerNight,
		MaxOccupancy:  v.MaxOccupancy,
		CreatedAt:     v.CreatedAt,
	}, nil
}

// Set は客室をキャッシュに保存する
func (c *RoomCache) Set(ctx context.Context, r *room.Room, ttl time.Duration) error {
	data, err := json.Marshal(cachedRoom{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		MaxOccupancy:  r.MaxOccupancy,
		CreatedAt:     r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("キャッシュの変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.roomKey(r.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は客室のキャッシュを無効化する
func (c *RoomCache) Invalidate(ctx context.Context, roomID string) error {
	if err := c.client.Del(ctx, c.roomKey(roomID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *RoomCache) roomKey(roomID string) string {
	return fmt.Sprintf("rooms:%s", roomID)
}
