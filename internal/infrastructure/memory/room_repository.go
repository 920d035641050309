package memory

import (
	"context"
	"sort"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
)

type RoomRepository struct {
	s *Store
}

func NewRoomRepository(s *Store) *RoomRepository {
	return &RoomRepository{s: s}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.hotels[rm.HotelID]; !ok {
		return hotel.ErrHotelNotFound
	}
	for _, existing := range r.s.rooms {
		if existing.HotelID == rm.HotelID && existing.RoomNumber == rm.RoomNumber {
			return room.ErrRoomAlreadyExists
		}
	}
	if rm.ID == "" {
		rm.ID = newID()
	}
	c := *rm
	r.s.rooms[rm.ID] = &c
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	c := *rm
	return &c, nil
}

func (r *RoomRepository) GetByHotelID(ctx context.Context, hotelID string) ([]*room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rooms := make([]*room.Room, 0)
	for _, rm := range r.s.rooms {
		if rm.HotelID == hotelID {
			c := *rm
			rooms = append(rooms, &c)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

var _ room.Repository = (*RoomRepository)(nil)
