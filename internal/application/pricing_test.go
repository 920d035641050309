package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
		rate money.Money
		want string
	}{
		{"100.0 × 3泊", "2026-03-01", "2026-03-04", money.FromUnits(100), "300.0"},
		{"50.0 × 3泊", "2026-02-01", "2026-02-04", money.FromUnits(50), "150.0"},
		{"0.1 × 3泊は誤差なし", "2026-03-01", "2026-03-04", money.FromTenths(1), "0.3"},
		{"99.9 × 30泊", "2026-04-01", "2026-05-01", money.FromTenths(999), "2997.0"},
		{"無料の客室", "2026-03-01", "2026-03-02", 0, "0.0"},
		{"100.0 × 209649泊", "2026-02-01", "2600-02-01", money.FromUnits(100), "20964900.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := daterange.Parse(tt.in, tt.out)
			require.NoError(t, err)
			got, err := CalculatePrice(stay, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalculatePrice_ZeroNights(t *testing.T) {
	stay, err := daterange.Parse("2026-03-01", "2026-03-01")
	require.NoError(t, err)
	_, err = CalculatePrice(stay, money.FromUnits(100))
	assert.ErrorIs(t, err, booking.ErrInvalidDates)
}
