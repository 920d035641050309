package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/clock"
)

// RoomLookup は予約検証で使う客室の取得元
type RoomLookup interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// ValidatedBooking は検証済みの予約要求（空室確認に進める状態）
type ValidatedBooking struct {
	UserID string
	Room   *room.Room
	Stay   daterange.DateRange
	Guests int
}

// BookingValidator は予約要求を検証する
type BookingValidator struct {
	rooms    RoomLookup
	clock    clock.Clock
	earliest time.Time
}

// NewBookingValidator は BookingValidator を作成する
// earliest がゼロ値でなければ、今日と earliest の遅い方を予約可能な最初の日とする
func NewBookingValidator(rooms RoomLookup, clk clock.Clock, earliest time.Time) *BookingValidator {
	if !earliest.IsZero() {
		earliest = daterange.Truncate(earliest)
	}
	return &BookingValidator{rooms: rooms, clock: clk, earliest: earliest}
}

// ReferenceDate はチェックイン可能な最初の日を返す
func (v *BookingValidator) ReferenceDate() time.Time {
	today := daterange.Today(v.clock.Now())
	if v.earliest.After(today) {
		return v.earliest
	}
	return today
}

// Validate は予約要求を検証する
// 検証順: 人数上限 → 客室の存在 → 客室の定員 → 期間の逆転 → 日付ポリシー（最初の失敗で打ち切る）
func (v *BookingValidator) Validate(ctx context.Context, in ReserveInput) (*ValidatedBooking, error) {
	if in.Guests > booking.MaxGuests {
		return nil, booking.ErrInvalidCapacity
	}

	rm, err := v.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("客室取得に失敗: %w", err)
	}
	if in.Guests > rm.MaxOccupancy {
		return nil, booking.ErrInvalidCapacity
	}

	stay := daterange.New(in.CheckIn, in.CheckOut)
	if stay.IsReversed() || in.Guests < 1 {
		return nil, booking.ErrInvalidRequest
	}

	if !stay.IsNotBefore(v.ReferenceDate()) {
		return nil, booking.ErrInvalidDates
	}
	if _, err := stay.Nights(); err != nil {
		return nil, booking.ErrInvalidDates
	}

	return &ValidatedBooking{
		UserID: in.UserID,
		Room:   rm,
		Stay:   stay,
		Guests: in.Guests,
	}, nil
}
