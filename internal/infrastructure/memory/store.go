package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// Store はプロセス内メモリに全集約を保持するストレージ
// ローカル実行とテストで postgres の代わりに使う
type Store struct {
	mu       sync.RWMutex
	users    map[string]*user.User
	hotels   map[string]*hotel.Hotel
	rooms    map[string]*room.Room
	bookings map[string]*booking.Booking
	// 作成順（同時刻の予約を新しい順に並べるため）
	seq     int64
	bookSeq map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*user.User),
		hotels:   make(map[string]*hotel.Hotel),
		rooms:    make(map[string]*room.Room),
		bookings: make(map[string]*booking.Booking),
		bookSeq:  make(map[string]int64),
	}
}

func newID() string {
	return uuid.New().String()
}

// TxManager は分離を持たない transaction.Manager
// 書き込みは各リポジトリのロック内で完結するため、コミットとロールバックは何もしない
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tx{}, nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

var _ transaction.Manager = (*TxManager)(nil)
