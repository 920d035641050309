package keylock

import (
	"context"
	"sync"
)

// KeyLock はキー単位の排他ロック
// 同じキーの処理は直列化し、異なるキーの処理は並行に実行できる
// 使用中でなくなったキーのエントリは解放する
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

// New は新しい KeyLock を作成する
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock は key のロックを取得する。ctx がキャンセルされた場合はエラーを返す
// 戻り値の関数でロックを解放する
func (k *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	e := k.acquireEntry(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.releaseEntry(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.releaseEntry(key, e)
		})
	}, nil
}

func (k *KeyLock) acquireEntry(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyLock) releaseEntry(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}
