package api

import (
	"errors"
	"net/http"

	"github.com/sanosuguru/go-hotel-reservation/internal/auth"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// エラーコード
const (
	CodeInvalidRequest             = "INVALID_REQUEST"
	CodeUnauthorized               = "UNAUTHORIZED"
	CodeForbidden                  = "FORBIDDEN"
	CodeNotFound                   = "NOT_FOUND"
	CodeMethodNotAllowed           = "METHOD_NOT_ALLOWED"
	CodeInternalServerError        = "INTERNAL_SERVER_ERROR"
	CodeEmailAlreadyExists         = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials         = "INVALID_CREDENTIALS"
	CodeHotelNotFound              = "HOTEL_NOT_FOUND"
	CodeRoomNotFound               = "ROOM_NOT_FOUND"
	CodeRoomAlreadyExists          = "ROOM_ALREADY_EXISTS"
	CodeBookingNotFound            = "BOOKING_NOT_FOUND"
	CodeInvalidCapacity            = "INVALID_CAPACITY"
	CodeInvalidDates               = "INVALID_DATES"
	CodeRoomNotAvailable           = "ROOM_NOT_AVAILABLE"
	CodeAlreadyCancelled           = "ALREADY_CANCELLED"
	CodeCancellationDeadlinePassed = "CANCELLATION_DEADLINE_PASSED"
)

var (
	// ErrInvalidRequest はリクエストの形式が不正な場合のエラー
	ErrInvalidRequest = errors.New("リクエストが不正です")
	// ErrUnauthorized は認証情報がない場合のエラー
	ErrUnauthorized = errors.New("認証が必要です")
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings は先頭から順に errors.Is で照合する
var errorMappings = []errorMapping{
	{ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},

	{booking.ErrInvalidCapacity, http.StatusBadRequest, CodeInvalidCapacity},
	{booking.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
	{booking.ErrInvalidDates, http.StatusBadRequest, CodeInvalidDates},
	{booking.ErrRoomNotAvailable, http.StatusBadRequest, CodeRoomNotAvailable},
	{booking.ErrBookingNotFound, http.StatusNotFound, CodeBookingNotFound},
	{booking.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{booking.ErrAlreadyCancelled, http.StatusBadRequest, CodeAlreadyCancelled},
	{booking.ErrCancellationDeadlinePassed, http.StatusBadRequest, CodeCancellationDeadlinePassed},
	{booking.ErrInvalidStatus, http.StatusBadRequest, CodeInvalidRequest},

	{room.ErrRoomNotFound, http.StatusNotFound, CodeRoomNotFound},
	{room.ErrRoomAlreadyExists, http.StatusBadRequest, CodeRoomAlreadyExists},
	{room.ErrHotelIDRequired, http.StatusBadRequest, CodeInvalidRequest},
	{room.ErrRoomNumberRequired, http.StatusBadRequest, CodeInvalidRequest},
	{room.ErrRoomTypeRequired, http.StatusBadRequest, CodeInvalidRequest},
	{room.ErrInvalidPrice, http.StatusBadRequest, CodeInvalidRequest},
	{room.ErrInvalidOccupancy, http.StatusBadRequest, CodeInvalidRequest},

	{hotel.ErrHotelNotFound, http.StatusNotFound, CodeHotelNotFound},
	{hotel.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{hotel.ErrOwnerIDRequired, http.StatusBadRequest, CodeInvalidRequest},
	{hotel.ErrHotelNameRequired, http.StatusBadRequest, CodeInvalidRequest},
	{hotel.ErrCityRequired, http.StatusBadRequest, CodeInvalidRequest},
	{hotel.ErrCountryRequired, http.StatusBadRequest, CodeInvalidRequest},

	{user.ErrEmailAlreadyExists, http.StatusBadRequest, CodeEmailAlreadyExists},
	{user.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
	{user.ErrNameRequired, http.StatusBadRequest, CodeInvalidRequest},
	{user.ErrEmailRequired, http.StatusBadRequest, CodeInvalidRequest},
	{user.ErrInvalidRole, http.StatusBadRequest, CodeInvalidRequest},
	{user.ErrPasswordTooShort, http.StatusBadRequest, CodeInvalidRequest},

	{daterange.ErrInvalidDate, http.StatusBadRequest, CodeInvalidRequest},
	{money.ErrInvalidAmount, http.StatusBadRequest, CodeInvalidRequest},
	{money.ErrTooPrecise, http.StatusBadRequest, CodeInvalidRequest},
	{money.ErrOverflow, http.StatusBadRequest, CodeInvalidRequest},
}

// StatusFor はエラーに対応する HTTP ステータスとエラーコードを返す
// 対応がない場合は 500 INTERNAL_SERVER_ERROR
func StatusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternalServerError
}

// codeForStatus は echo.HTTPError のステータスからエラーコードを決める
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return CodeInvalidRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	}
	if status >= 500 {
		return CodeInternalServerError
	}
	return http.StatusText(status)
}
