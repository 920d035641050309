package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockBookingRepository implements booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) ([]*booking.Booking, error) {
	args := m.Called(ctx, tx, roomID, stay, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, id string, status booking.Status, cancelledAt time.Time) (*booking.Booking, error) {
	args := m.Called(ctx, tx, id, status, cancelledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string, status booking.Status) ([]*booking.Details, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Details), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[booking.Status]int), args.Error(1)
}

// MockRoomLookup implements RoomLookup
type MockRoomLookup struct {
	mock.Mock
}

func (m *MockRoomLookup) GetByID(ctx context.Context, id string) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

// MockRoomLocker implements RoomLocker
type MockRoomLocker struct {
	mock.Mock
	released int
}

func (m *MockRoomLocker) LockRoom(ctx context.Context, roomID string) (func(), error) {
	args := m.Called(ctx, roomID)
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return func() { m.released++ }, nil
}

// MockRoomCache implements RoomCache
type MockRoomCache struct {
	mock.Mock
}

func (m *MockRoomCache) Get(ctx context.Context, roomID string) (*room.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomCache) Set(ctx context.Context, r *room.Room, ttl time.Duration) error {
	args := m.Called(ctx, r, ttl)
	return args.Error(0)
}
