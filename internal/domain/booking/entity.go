package booking

import (
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

// Status は予約の状態を表す
// 遷移は confirmed → cancelled の一方向のみ
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsValid は定義済みの状態かを返す
func (s Status) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// MaxGuests は客室の定員にかかわらず適用される1予約あたりの上限人数
const MaxGuests = 9

// CancellationDeadline はチェックインの何時間前までキャンセルできるか（境界を含む）
const CancellationDeadline = 24 * time.Hour

// Booking は予約エンティティを表す
type Booking struct {
	ID          string
	UserID      string
	RoomID      string
	HotelID     string
	Stay        daterange.DateRange
	Guests      int
	TotalPrice  money.Money
	Status      Status
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// NewConfirmedBooking は確定状態の予約を作成する
// 料金はこの時点で確定し、以後再計算しない
func NewConfirmedBooking(userID, roomID, hotelID string, stay daterange.DateRange, guests int, totalPrice money.Money, now time.Time) *Booking {
	return &Booking{
		UserID:     userID,
		RoomID:     roomID,
		HotelID:    hotelID,
		Stay:       stay,
		Guests:     guests,
		TotalPrice: totalPrice,
		Status:     StatusConfirmed,
		CreatedAt:  now,
	}
}

// IsConfirmed は予約が確定状態かを返す
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsOwnedBy は指定ユーザーの予約かを返す
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}

// CheckInAt はチェックイン日の 0 時（UTC）を返す
func (b *Booking) CheckInAt() time.Time {
	return b.Stay.CheckIn
}

// CanCancelAt は now 時点でキャンセル期限内かを返す
func (b *Booking) CanCancelAt(now time.Time) bool {
	return b.CheckInAt().Sub(now) >= CancellationDeadline
}

// CheckCancellable は requesterID が now 時点でキャンセルできるかを検証する
// 検証順: 所有者 → 状態 → 期限
func (b *Booking) CheckCancellable(requesterID string, now time.Time) error {
	if !b.IsOwnedBy(requesterID) {
		return ErrForbidden
	}
	if !b.IsConfirmed() {
		return ErrAlreadyCancelled
	}
	if !b.CanCancelAt(now) {
		return ErrCancellationDeadlinePassed
	}
	return nil
}

// Cancel は予約をキャンセルする
func (b *Booking) Cancel(requesterID string, now time.Time) error {
	if err := b.CheckCancellable(requesterID, now); err != nil {
		return err
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	return nil
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return ErrUserIDRequired
	}
	if b.RoomID == "" {
		return ErrRoomIDRequired
	}
	if b.Guests < 1 || b.Guests > MaxGuests {
		return ErrInvalidCapacity
	}
	if _, err := b.Stay.Nights(); err != nil {
		return ErrInvalidDates
	}
	if b.TotalPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if !b.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Details は一覧表示用にホテル名・客室情報を付与した予約
type Details struct {
	*Booking
	HotelName  string
	RoomNumber string
	RoomType   string
}
