package room

import (
	"strings"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

// Room は客室エンティティを表す
// 料金は予約作成時に予約側へ確定されるため、料金変更は既存予約に影響しない
type Room struct {
	ID            string
	HotelID       string
	RoomNumber    string
	RoomType      string
	PricePerNight money.Money
	MaxOccupancy  int
	CreatedAt     time.Time
}

// NewRoom は新しい客室を作成する
func NewRoom(hotelID, roomNumber, roomType string, pricePerNight money.Money, maxOccupancy int) *Room {
	return &Room{
		HotelID:       hotelID,
		RoomNumber:    strings.TrimSpace(roomNumber),
		RoomType:      strings.TrimSpace(roomType),
		PricePerNight: pricePerNight,
		MaxOccupancy:  maxOccupancy,
		CreatedAt:     time.Now(),
	}
}

// CanAccommodate は指定人数が定員以内かを返す
func (r *Room) CanAccommodate(guests int) bool {
	return guests >= 1 && guests <= r.MaxOccupancy
}

// Validate は客室の検証を行う
func (r *Room) Validate() error {
	if r.HotelID == "" {
		return ErrHotelIDRequired
	}
	if r.RoomNumber == "" {
		return ErrRoomNumberRequired
	}
	if r.RoomType == "" {
		return ErrRoomTypeRequired
	}
	if r.PricePerNight.IsNegative() {
		return ErrInvalidPrice
	}
	if r.MaxOccupancy < 1 {
		return ErrInvalidOccupancy
	}
	return nil
}
