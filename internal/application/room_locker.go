package application

import (
	"context"

	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/keylock"
)

// RoomLocker は客室単位の排他を提供する
// 同じ客室への予約処理は直列化し、異なる客室は並行に処理する
type RoomLocker interface {
	// LockRoom は客室のロックを取得し、解放用の関数を返す
	LockRoom(ctx context.Context, roomID string) (unlock func(), err error)
}

// LocalRoomLocker はプロセス内で完結する RoomLocker
type LocalRoomLocker struct {
	locks *keylock.KeyLock
}

func NewLocalRoomLocker() *LocalRoomLocker {
	return &LocalRoomLocker{locks: keylock.New()}
}

func (l *LocalRoomLocker) LockRoom(ctx context.Context, roomID string) (func(), error) {
	return l.locks.Lock(ctx, roomID)
}

var _ RoomLocker = (*LocalRoomLocker)(nil)
