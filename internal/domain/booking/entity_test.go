package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

func createTestBooking(t *testing.T) *Booking {
	t.Helper()
	stay, err := daterange.Parse("2026-02-01", "2026-02-04")
	require.NoError(t, err)
	b := NewConfirmedBooking("user-a", "room-x", "hotel-1", stay, 2, money.FromUnits(150), time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, b.Validate())
	return b
}

func TestNewConfirmedBooking(t *testing.T) {
	b := createTestBooking(t)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.True(t, b.IsConfirmed())
	assert.Nil(t, b.CancelledAt)
	assert.Equal(t, "150.0", b.TotalPrice.String())
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *Booking)
		wantErr error
	}{
		{"ユーザーIDなし", func(b *Booking) { b.UserID = "" }, ErrUserIDRequired},
		{"客室IDなし", func(b *Booking) { b.RoomID = "" }, ErrRoomIDRequired},
		{"0人", func(b *Booking) { b.Guests = 0 }, ErrInvalidCapacity},
		{"10人", func(b *Booking) { b.Guests = 10 }, ErrInvalidCapacity},
		{"0泊", func(b *Booking) { b.Stay.CheckOut = b.Stay.CheckIn }, ErrInvalidDates},
		{"負の料金", func(b *Booking) { b.TotalPrice = money.FromTenths(-1) }, ErrInvalidPrice},
		{"不正な状態", func(b *Booking) { b.Status = "pending" }, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createTestBooking(t)
			tt.mutate(b)
			assert.ErrorIs(t, b.Validate(), tt.wantErr)
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	checkIn := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		requester string
		status    Status
		now       time.Time
		wantErr   error
	}{
		{"チェックイン2日前はキャンセル可能", "user-a", StatusConfirmed, time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), nil},
		{"ちょうど24時間前はキャンセル可能", "user-a", StatusConfirmed, checkIn.Add(-24 * time.Hour), nil},
		{"23時間59分前は期限切れ", "user-a", StatusConfirmed, checkIn.Add(-(23*time.Hour + 59*time.Minute)), ErrCancellationDeadlinePassed},
		{"チェックイン後は期限切れ", "user-a", StatusConfirmed, checkIn.Add(time.Hour), ErrCancellationDeadlinePassed},
		{"他人の予約は操作不可", "user-b", StatusConfirmed, time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), ErrForbidden},
		{"キャンセル済みは再キャンセル不可", "user-a", StatusCancelled, time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), ErrAlreadyCancelled},
		{"他人かつキャンセル済みは権限エラーが優先", "user-b", StatusCancelled, time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), ErrForbidden},
		{"キャンセル済みかつ期限切れは状態エラーが優先", "user-a", StatusCancelled, checkIn, ErrAlreadyCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createTestBooking(t)
			b.Status = tt.status
			err := b.Cancel(tt.requester, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, b.Status, "失敗時は状態を変更しない")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusCancelled, b.Status)
			require.NotNil(t, b.CancelledAt)
			assert.Equal(t, tt.now, *b.CancelledAt)
		})
	}
}

func TestBooking_CancelIsTerminal(t *testing.T) {
	b := createTestBooking(t)
	now := time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC)
	require.NoError(t, b.Cancel("user-a", now))
	assert.ErrorIs(t, b.Cancel("user-a", now), ErrAlreadyCancelled)
	assert.Equal(t, now, *b.CancelledAt, "キャンセル日時は上書きされない")
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("pending").IsValid())
}
