package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
)

type HotelHandler struct {
	service CatalogServiceInterface
}

func NewHotelHandler(s CatalogServiceInterface) *HotelHandler {
	return &HotelHandler{service: s}
}

type CreateHotelRequest struct {
	Name        string   `json:"name" validate:"required" example:"Grand Hotel"`
	Description string   `json:"description" example:"駅徒歩3分"`
	City        string   `json:"city" validate:"required" example:"Tokyo"`
	Country     string   `json:"country" validate:"required" example:"Japan"`
	Amenities   []string `json:"amenities" example:"wifi,spa"`
}

type CreateRoomRequest struct {
	RoomNumber    string      `json:"roomNumber" validate:"required" example:"101"`
	RoomType      string      `json:"roomType" validate:"required" example:"double"`
	PricePerNight money.Money `json:"pricePerNight" validate:"gte=0" example:"150.0"`
	MaxOccupancy  int         `json:"maxOccupancy" validate:"required,gte=1" example:"2"`
}

type HotelResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Amenities    []string  `json:"amenities"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RoomResponse struct {
	ID            string      `json:"id"`
	HotelID       string      `json:"hotelId"`
	RoomNumber    string      `json:"roomNumber"`
	RoomType      string      `json:"roomType"`
	PricePerNight money.Money `json:"pricePerNight"`
	MaxOccupancy  int         `json:"maxOccupancy"`
}

type HotelDetailResponse struct {
	HotelResponse
	Rooms []RoomResponse `json:"rooms"`
}

type HotelSummaryResponse struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	City             string       `json:"city"`
	Country          string       `json:"country"`
	Amenities        []string     `json:"amenities"`
	Rating           float64      `json:"rating"`
	TotalReviews     int          `json:"totalReviews"`
	MinPricePerNight *money.Money `json:"minPricePerNight"`
}

func toHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID: h.ID, OwnerID: h.OwnerID, Name: h.Name, Description: h.Description,
		City: h.City, Country: h.Country, Amenities: h.Amenities,
		Rating: h.Rating, TotalReviews: h.TotalReviews, CreatedAt: h.CreatedAt,
	}
}

func toRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID: r.ID, HotelID: r.HotelID, RoomNumber: r.RoomNumber, RoomType: r.RoomType,
		PricePerNight: r.PricePerNight, MaxOccupancy: r.MaxOccupancy,
	}
}

// Create godoc
// @Summary ホテルを登録
// @Description オーナー権限のユーザーのみ登録できます
// @Tags hotels
// @Accept json
// @Produce json
// @Param request body CreateHotelRequest true "ホテル情報"
// @Success 201 {object} api.Response
// @Failure 403 {object} api.Response "FORBIDDEN"
// @Router /api/hotels [post]
func (h *HotelHandler) Create(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	var req CreateHotelRequest
	if err := c.Bind(&req); err != nil {
		return api.ErrInvalidRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := h.service.CreateHotel(c.Request().Context(), application.CreateHotelInput{
		OwnerID: id.UserID, Role: id.Role, Name: req.Name, Description: req.Description,
		City: req.City, Country: req.Country, Amenities: req.Amenities,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, toHotelResponse(created))
}

// CreateRoom godoc
// @Summary 客室を追加
// @Description ホテルの所有者のみ追加できます
// @Tags hotels
// @Accept json
// @Produce json
// @Param hotelId path string true "ホテルID"
// @Param request body CreateRoomRequest true "客室情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response "ROOM_ALREADY_EXISTS"
// @Failure 404 {object} api.Response "HOTEL_NOT_FOUND"
// @Router /api/hotels/{hotelId}/rooms [post]
func (h *HotelHandler) CreateRoom(c echo.Context) error {
	id, err := api.CurrentIdentity(c)
	if err != nil {
		return err
	}
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return api.ErrInvalidRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateRoom(c.Request().Context(), application.CreateRoomInput{
		HotelID: c.Param("hotelId"), RequesterID: id.UserID,
		RoomNumber: req.RoomNumber, RoomType: req.RoomType,
		PricePerNight: req.PricePerNight, MaxOccupancy: req.MaxOccupancy,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, toRoomResponse(r))
}

// GetByID godoc
// @Summary ホテル詳細を取得
// @Tags hotels
// @Produce json
// @Param hotelId path string true "ホテルID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response "HOTEL_NOT_FOUND"
// @Router /api/hotels/{hotelId} [get]
func (h *HotelHandler) GetByID(c echo.Context) error {
	res, err := h.service.GetHotel(c.Request().Context(), c.Param("hotelId"))
	if err != nil {
		return err
	}
	rooms := make([]RoomResponse, len(res.Rooms))
	for i, r := range res.Rooms {
		rooms[i] = toRoomResponse(r)
	}
	return api.Success(c, http.StatusOK, HotelDetailResponse{HotelResponse: toHotelResponse(res.Hotel), Rooms: rooms})
}

// Search godoc
// @Summary ホテルを検索
// @Tags hotels
// @Produce json
// @Param city query string false "都市（大文字小文字を区別しない）"
// @Param country query string false "国（大文字小文字を区別しない）"
// @Param minPrice query number false "1泊料金の下限"
// @Param maxPrice query number false "1泊料金の上限"
// @Param minRating query number false "評価の下限"
// @Success 200 {object} api.Response
// @Router /api/hotels [get]
func (h *HotelHandler) Search(c echo.Context) error {
	filter, err := parseSearchFilter(c)
	if err != nil {
		return err
	}
	list, err := h.service.SearchHotels(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]HotelSummaryResponse, len(list))
	for i, s := range list {
		resp[i] = HotelSummaryResponse{
			ID: s.Hotel.ID, Name: s.Hotel.Name, Description: s.Hotel.Description,
			City: s.Hotel.City, Country: s.Hotel.Country, Amenities: s.Hotel.Amenities,
			Rating: s.Hotel.Rating, TotalReviews: s.Hotel.TotalReviews,
			MinPricePerNight: s.MinPricePerNight,
		}
	}
	return api.Success(c, http.StatusOK, resp)
}

func parseSearchFilter(c echo.Context) (hotel.SearchFilter, error) {
	f := hotel.SearchFilter{
		City:    c.QueryParam("city"),
		Country: c.QueryParam("country"),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		p, err := money.Parse(v)
		if err != nil {
			return f, err
		}
		f.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := money.Parse(v)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &p
	}
	if v := c.QueryParam("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, api.ErrInvalidRequest
		}
		f.MinRating = &r
	}
	return f, nil
}
