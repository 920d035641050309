package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"人数超過", booking.ErrInvalidCapacity, http.StatusBadRequest, CodeInvalidCapacity},
		{"客室なし", room.ErrRoomNotFound, http.StatusNotFound, CodeRoomNotFound},
		{"ラップされた客室なし", fmt.Errorf("客室取得に失敗: %w", room.ErrRoomNotFound), http.StatusNotFound, CodeRoomNotFound},
		{"期間の逆転", booking.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
		{"日付ポリシー違反", booking.ErrInvalidDates, http.StatusBadRequest, CodeInvalidDates},
		{"満室", booking.ErrRoomNotAvailable, http.StatusBadRequest, CodeRoomNotAvailable},
		{"予約なし", booking.ErrBookingNotFound, http.StatusNotFound, CodeBookingNotFound},
		{"他人の予約", booking.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"キャンセル済み", booking.ErrAlreadyCancelled, http.StatusBadRequest, CodeAlreadyCancelled},
		{"キャンセル期限切れ", booking.ErrCancellationDeadlinePassed, http.StatusBadRequest, CodeCancellationDeadlinePassed},
		{"ホテルなし", hotel.ErrHotelNotFound, http.StatusNotFound, CodeHotelNotFound},
		{"部屋番号の重複", room.ErrRoomAlreadyExists, http.StatusBadRequest, CodeRoomAlreadyExists},
		{"メールアドレスの重複", user.ErrEmailAlreadyExists, http.StatusBadRequest, CodeEmailAlreadyExists},
		{"認証情報の誤り", user.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"未認証", ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"バリデーション失敗", fmt.Errorf("%w: name is required", ErrInvalidRequest), http.StatusBadRequest, CodeInvalidRequest},
		{"再試行しきれなかった競合", transaction.ErrConflict, http.StatusInternalServerError, CodeInternalServerError},
		{"想定外のエラー", assert.AnError, http.StatusInternalServerError, CodeInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCustomHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"ドメインエラー", http.MethodGet, booking.ErrRoomNotAvailable, http.StatusBadRequest,
			`{"success":false,"data":null,"error":"ROOM_NOT_AVAILABLE"}`},
		{"echoの404", http.MethodGet, echo.ErrNotFound, http.StatusNotFound,
			`{"success":false,"data":null,"error":"NOT_FOUND"}`},
		{"echoの405", http.MethodGet, echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed,
			`{"success":false,"data":null,"error":"METHOD_NOT_ALLOWED"}`},
		{"想定外のエラー", http.MethodGet, assert.AnError, http.StatusInternalServerError,
			`{"success":false,"data":null,"error":"INTERNAL_SERVER_ERROR"}`},
		{"HEADは本文なし", http.MethodHead, booking.ErrBookingNotFound, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			CustomHTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCustomHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	CustomHTTPErrorHandler(booking.ErrForbidden, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := CurrentIdentity(c)
	assert.ErrorIs(t, err, ErrUnauthorized)

	SetIdentity(c, Identity{UserID: "user-1", Role: user.RoleCustomer})
	id, err := CurrentIdentity(c)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-1", Role: user.RoleCustomer}, id)
}

func TestCustomValidator(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&req{Email: "a@example.com"}))
	assert.ErrorIs(t, v.Validate(&req{Email: "nope"}), ErrInvalidRequest)
}
