package handler

import (
	"context"

	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// AuthServiceInterface は認証サービスのインターフェース
type AuthServiceInterface interface {
	Signup(ctx context.Context, input application.SignupInput) (*user.User, error)
	Login(ctx context.Context, email, password string) (*application.LoginResult, error)
}

// CatalogServiceInterface はホテル・客室サービスのインターフェース
type CatalogServiceInterface interface {
	CreateHotel(ctx context.Context, input application.CreateHotelInput) (*hotel.Hotel, error)
	CreateRoom(ctx context.Context, input application.CreateRoomInput) (*room.Room, error)
	GetHotel(ctx context.Context, id string) (*application.HotelWithRooms, error)
	SearchHotels(ctx context.Context, filter hotel.SearchFilter) ([]*hotel.Summary, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	Reserve(ctx context.Context, input application.ReserveInput) (*booking.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID string) (*booking.Booking, error)
	GetBooking(ctx context.Context, bookingID, requesterID string) (*booking.Booking, error)
	ListUserBookings(ctx context.Context, userID string, status booking.Status) ([]*booking.Details, error)
}

var (
	_ AuthServiceInterface    = (*application.AuthService)(nil)
	_ CatalogServiceInterface = (*application.CatalogService)(nil)
	_ BookingServiceInterface = (*application.BookingService)(nil)
)
