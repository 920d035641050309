package application

import (
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

// CalculatePrice は宿泊料金（1泊料金 × 泊数）を計算する
func CalculatePrice(stay daterange.DateRange, nightlyRate money.Money) (money.Money, error) {
	nights, err := stay.Nights()
	if err != nil {
		return 0, booking.ErrInvalidDates
	}
	return nightlyRate.Multiply(int64(nights))
}
