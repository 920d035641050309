package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

type HotelRepository struct {
	s *Store
}

func NewHotelRepository(s *Store) *HotelRepository {
	return &HotelRepository{s: s}
}

func (r *HotelRepository) Create(ctx context.Context, h *hotel.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h.ID == "" {
		h.ID = newID()
	}
	r.s.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.hotels[id]
	if !ok {
		return nil, hotel.ErrHotelNotFound
	}
	return cloneHotel(h), nil
}

// Search は都市・国（大文字小文字を区別しない）、評価、料金帯で絞り込む
// 料金帯の指定がある場合は帯内の客室を持つホテルのみを返す
func (r *HotelRepository) Search(ctx context.Context, f hotel.SearchFilter) ([]*hotel.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*hotel.Summary, 0)
	for _, h := range r.s.hotels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.City != "" && !strings.EqualFold(h.City, f.City) {
			continue
		}
		if f.Country != "" && !strings.EqualFold(h.Country, f.Country) {
			continue
		}
		if f.MinRating != nil && h.Rating < *f.MinRating {
			continue
		}

		var minPrice *money.Money
		for _, rm := range r.s.rooms {
			if rm.HotelID != h.ID || !f.InPriceBand(rm.PricePerNight) {
				continue
			}
			if minPrice == nil || rm.PricePerNight < *minPrice {
				p := rm.PricePerNight
				minPrice = &p
			}
		}
		if f.HasPriceBand() && minPrice == nil {
			continue
		}
		result = append(result, &hotel.Summary{Hotel: cloneHotel(h), MinPricePerNight: minPrice})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Hotel.CreatedAt.Before(result[j].Hotel.CreatedAt)
	})
	return result, nil
}

func cloneHotel(h *hotel.Hotel) *hotel.Hotel {
	c := *h
	c.Amenities = append([]string{}, h.Amenities...)
	return &c
}

var _ hotel.Repository = (*HotelRepository)(nil)
