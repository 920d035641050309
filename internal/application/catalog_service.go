package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// CatalogService はホテルと客室を管理する
type CatalogService struct {
	hotelRepo hotel.Repository
	roomRepo  room.Repository
}

func NewCatalogService(hr hotel.Repository, rr room.Repository) *CatalogService {
	return &CatalogService{hotelRepo: hr, roomRepo: rr}
}

type CreateHotelInput struct {
	OwnerID     string
	Role        user.Role
	Name        string
	Description string
	City        string
	Country     string
	Amenities   []string
}

// CreateHotel はホテルを登録する（オーナー権限のみ）
func (s *CatalogService) CreateHotel(ctx context.Context, in CreateHotelInput) (*hotel.Hotel, error) {
	if in.Role != user.RoleOwner {
		return nil, hotel.ErrForbidden
	}
	h := hotel.NewHotel(in.OwnerID, in.Name, in.Description, in.City, in.Country, in.Amenities)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("ホテル作成に失敗: %w", err)
	}
	return h, nil
}

type CreateRoomInput struct {
	HotelID       string
	RequesterID   string
	RoomNumber    string
	RoomType      string
	PricePerNight money.Money
	MaxOccupancy  int
}

// CreateRoom はホテルに客室を追加する（ホテルの所有者のみ）
func (s *CatalogService) CreateRoom(ctx context.Context, in CreateRoomInput) (*room.Room, error) {
	h, err := s.hotelRepo.GetByID(ctx, in.HotelID)
	if err != nil {
		return nil, err
	}
	if !h.IsOwnedBy(in.RequesterID) {
		return nil, hotel.ErrForbidden
	}

	r := room.NewRoom(h.ID, in.RoomNumber, in.RoomType, in.PricePerNight, in.MaxOccupancy)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, r); err != nil {
		if errors.Is(err, room.ErrRoomAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("客室作成に失敗: %w", err)
	}
	return r, nil
}

// HotelWithRooms はホテル詳細（客室一覧付き）
type HotelWithRooms struct {
	Hotel *hotel.Hotel
	Rooms []*room.Room
}

// GetHotel はホテルと客室一覧を取得する
func (s *CatalogService) GetHotel(ctx context.Context, id string) (*HotelWithRooms, error) {
	h, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.GetByHotelID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("客室一覧の取得に失敗: %w", err)
	}
	return &HotelWithRooms{Hotel: h, Rooms: rooms}, nil
}

// SearchHotels は条件に一致するホテルを検索する
func (s *CatalogService) SearchHotels(ctx context.Context, filter hotel.SearchFilter) ([]*hotel.Summary, error) {
	list, err := s.hotelRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ホテル検索に失敗: %w", err)
	}
	return list, nil
}
