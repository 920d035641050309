package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// BookingRepository はメモリ上の予約リポジトリ
// Create は確定予約同士の期間の重なりを書き込みロック内で拒否する（postgres の排他制約に相当）
type BookingRepository struct {
	s *Store
}

func NewBookingRepository(s *Store) *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) ([]*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.overlappingLocked(roomID, stay, excludeID), nil
}

func (r *BookingRepository) overlappingLocked(roomID string, stay daterange.DateRange, excludeID string) []*booking.Booking {
	found := make([]*booking.Booking, 0)
	for _, b := range r.s.bookings {
		if b.RoomID != roomID || b.ID == excludeID || !b.IsConfirmed() {
			continue
		}
		if b.Stay.Overlaps(stay) {
			found = append(found, cloneBooking(b))
		}
	}
	return found
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.IsConfirmed() && len(r.overlappingLocked(b.RoomID, b.Stay, "")) > 0 {
		return booking.ErrRoomNotAvailable
	}
	if b.ID == "" {
		b.ID = newID()
	}
	r.s.seq++
	r.s.bookSeq[b.ID] = r.s.seq
	r.s.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// UpdateStatus は確定状態の予約のみ更新する
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, id string, status booking.Status, cancelledAt time.Time) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	if !b.IsConfirmed() {
		return nil, booking.ErrAlreadyCancelled
	}
	b.Status = status
	if status == booking.StatusCancelled {
		t := cancelledAt
		b.CancelledAt = &t
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string, status booking.Status) ([]*booking.Details, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]*booking.Details, 0)
	for _, b := range r.s.bookings {
		if b.UserID != userID || (status != "" && b.Status != status) {
			continue
		}
		d := &booking.Details{Booking: cloneBooking(b)}
		if h, ok := r.s.hotels[b.HotelID]; ok {
			d.HotelName = h.Name
		}
		if rm, ok := r.s.rooms[b.RoomID]; ok {
			d.RoomNumber = rm.RoomNumber
			d.RoomType = rm.RoomType
		}
		list = append(list, d)
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return r.s.bookSeq[list[i].ID] > r.s.bookSeq[list[j].ID]
	})
	return list, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[booking.Status]int{
		booking.StatusConfirmed: 0,
		booking.StatusCancelled: 0,
	}
	for _, b := range r.s.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	c := *b
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

var _ booking.Repository = (*BookingRepository)(nil)
