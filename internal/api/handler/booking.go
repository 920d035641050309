package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

// 人数の範囲はサービス側で検証する（エラーの優先順位を保つため）
type CreateBookingRequest struct {
	RoomID       string `json:"roomId" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	CheckInDate  string `json:"checkInDate" validate:"required,datetime=2006-01-02" example:"2026-03-05"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02" example:"2026-03-10"`
	Guests       int    `json:"guests" example:"2"`
}

type BookingResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	RoomID       string      `json:"roomId"`
	HotelID      string      `json:"hotelId"`
	CheckInDate  string      `json:"checkInDate"`
	CheckOutDate string      `json:"checkOutDate"`
	Guests       int         `json:"guests"`
	TotalPrice   money.Money `json:"totalPrice"`
	Status       string      `json:"status"`
	BookingDate  time.Time   `json:"bookingDate"`
	CancelledAt  *time.Time  `json:"cancelledAt,omitempty"`
}

type BookingListItemResponse struct {
	BookingResponse
	HotelName  string `json:"hotelName"`
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
}

type CancelBookingResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, UserID: b.UserID, RoomID: b.RoomID, HotelID: b.HotelID,
		CheckInDate:  b.Stay.CheckIn.Format(daterange.Layout),
		CheckOutDate: b.Stay.CheckOut.Format(daterange.Layout),
		Guests:       b.Guests, TotalPrice: b.TotalPrice, Status: string(b.Status),
		BookingDate: b.CreatedAt, CancelledAt: b.CancelledAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 客室を指定期間で予約します（顧客のみ）
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response "INVALID_CAPACITY / INVALID_REQUEST / INVALID_DATES / ROOM_NOT_AVAILABLE"
// @Failure 403 {object} api.Response "FORBIDDEN"
// @Failure 404 {object} api.Response "ROOM_NOT_FOUND"
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return api.ErrInvalidRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	stay, err := daterange.Parse(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return err
	}
	b, err := h.service.Reserve(c.Request().Context(), application.ReserveInput{
		UserID: id.UserID, Role: id.Role, RoomID: req.RoomID,
		CheckIn: stay.CheckIn, CheckOut: stay.CheckOut, Guests: req.Guests,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, toBookingResponse(b))
}

// List godoc
// @Summary 自分の予約一覧を取得
// @Tags bookings
// @Produce json
// @Param status query string false "confirmed / cancelled"
// @Success 200 {object} api.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListUserBookings(c.Request().Context(), id.UserID, booking.Status(c.QueryParam("status")))
	if err != nil {
		return err
	}
	resp := make([]BookingListItemResponse, len(list))
	for i, d := range list {
		resp[i] = BookingListItemResponse{
			BookingResponse: toBookingResponse(d.Booking),
			HotelName:       d.HotelName,
			RoomNumber:      d.RoomNumber,
			RoomType:        d.RoomType,
		}
	}
	return api.Success(c, http.StatusOK, resp)
}

// GetByID godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Param bookingId path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 403 {object} api.Response "FORBIDDEN"
// @Failure 404 {object} api.Response "BOOKING_NOT_FOUND"
// @Router /api/bookings/{bookingId} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("bookingId"), id.UserID)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description チェックインの24時間前までキャンセルできます
// @Tags bookings
// @Produce json
// @Param bookingId path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response "ALREADY_CANCELLED / CANCELLATION_DEADLINE_PASSED"
// @Failure 403 {object} api.Response "FORBIDDEN"
// @Failure 404 {object} api.Response "BOOKING_NOT_FOUND"
// @Router /api/bookings/{bookingId}/cancel [put]
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	b, err := h.service.Cancel(c.Request().Context(), c.Param("bookingId"), id.UserID)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, CancelBookingResponse{ID: b.ID, Status: string(b.Status), CancelledAt: b.CancelledAt})
}
