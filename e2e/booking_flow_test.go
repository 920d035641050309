package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envelope は共通レスポンス形式
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func (ts *TestServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.Handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

// errorCode はエラーレスポンスのコードを返す
func errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return *env.Error
}

// signupAndLogin はユーザーを登録してトークンを返す
func (ts *TestServer) signupAndLogin(t *testing.T, name, email, role string) string {
	t.Helper()
	code, env := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "password123", "role": role,
	})
	require.Equal(t, http.StatusCreated, code, errorCode(env))

	code, env = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, code, errorCode(env))

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

// createHotelWithRoom はオーナーとしてホテルと客室を1つ作成する
func (ts *TestServer) createHotelWithRoom(t *testing.T, ownerToken string, price float64, maxOccupancy int) (hotelID, roomID string) {
	t.Helper()
	code, env := ts.do(t, http.MethodPost, "/api/hotels", ownerToken, map[string]interface{}{
		"name": "Sea View", "description": "海の見えるホテル", "city": "Naha", "country": "Japan",
		"amenities": []string{"wifi", "pool"},
	})
	require.Equal(t, http.StatusCreated, code, errorCode(env))
	var h struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &h))

	code, env = ts.do(t, http.MethodPost, "/api/hotels/"+h.ID+"/rooms", ownerToken, map[string]interface{}{
		"roomNumber": "101", "roomType": "double", "pricePerNight": price, "maxOccupancy": maxOccupancy,
	})
	require.Equal(t, http.StatusCreated, code, errorCode(env))
	var r struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &r))
	return h.ID, r.ID
}

type bookingBody struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	RoomID       string     `json:"roomId"`
	HotelID      string     `json:"hotelId"`
	CheckInDate  string     `json:"checkInDate"`
	CheckOutDate string     `json:"checkOutDate"`
	Guests       int        `json:"guests"`
	TotalPrice   float64    `json:"totalPrice"`
	Status       string     `json:"status"`
	CancelledAt  *time.Time `json:"cancelledAt"`
}

func (ts *TestServer) book(t *testing.T, token, roomID, in, out string, guests int) (int, envelope) {
	t.Helper()
	return ts.do(t, http.MethodPost, "/api/bookings", token, map[string]interface{}{
		"roomId": roomID, "checkInDate": in, "checkOutDate": out, "guests": guests,
	})
}

func TestBookingFlow_ReserveListCancel(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.signupAndLogin(t, "Owner", "owner@example.com", "owner")
	alice := ts.signupAndLogin(t, "Alice", "alice@example.com", "customer")
	bob := ts.signupAndLogin(t, "Bob", "bob@example.com", "customer")

	hotelID, roomID := ts.createHotelWithRoom(t, owner, 150.0, 2)

	// 予約作成（3泊 × 150.0）
	code, env := ts.book(t, alice, roomID, "2026-02-01", "2026-02-04", 2)
	require.Equal(t, http.StatusCreated, code, errorCode(env))
	var created bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, hotelID, created.HotelID)
	assert.Equal(t, 450.0, created.TotalPrice)
	assert.Nil(t, created.CancelledAt)

	// 重なる期間は予約できない
	code, env = ts.book(t, bob, roomID, "2026-02-03", "2026-02-05", 1)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ROOM_NOT_AVAILABLE", errorCode(env))

	// 連続する期間は予約できる
	code, env = ts.book(t, bob, roomID, "2026-02-04", "2026-02-06", 1)
	assert.Equal(t, http.StatusCreated, code, errorCode(env))

	// 他人の予約は参照・キャンセルできない
	code, env = ts.do(t, http.MethodGet, "/api/bookings/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errorCode(env))
	code, env = ts.do(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errorCode(env))

	// 一覧にはホテル名と客室番号が含まれる
	code, env = ts.do(t, http.MethodGet, "/api/bookings", alice, nil)
	require.Equal(t, http.StatusOK, code)
	var list []struct {
		bookingBody
		HotelName  string `json:"hotelName"`
		RoomNumber string `json:"roomNumber"`
		RoomType   string `json:"roomType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Sea View", list[0].HotelName)
	assert.Equal(t, "101", list[0].RoomNumber)
	assert.Equal(t, "double", list[0].RoomType)

	// キャンセル
	code, env = ts.do(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", alice, nil)
	require.Equal(t, http.StatusOK, code, errorCode(env))
	var cancelled struct {
		ID          string     `json:"id"`
		Status      string     `json:"status"`
		CancelledAt *time.Time `json:"cancelledAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// 二重キャンセルは不可
	code, env = ts.do(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ALREADY_CANCELLED", errorCode(env))

	// キャンセル後は同じ期間を予約できる
	code, env = ts.book(t, bob, roomID, "2026-02-01", "2026-02-04", 1)
	assert.Equal(t, http.StatusCreated, code, errorCode(env))

	// 状態で絞り込み
	code, env = ts.do(t, http.MethodGet, "/api/bookings?status=cancelled", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "cancelled", list[0].Status)

	code, env = ts.do(t, http.MethodGet, "/api/bookings?status=confirmed", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestBookingFlow_CancellationDeadline(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.signupAndLogin(t, "Owner", "owner@example.com", "owner")
	alice := ts.signupAndLogin(t, "Alice", "alice@example.com", "customer")
	_, roomID := ts.createHotelWithRoom(t, owner, 100.0, 2)

	code, env := ts.book(t, alice, roomID, "2026-01-22", "2026-01-23", 1)
	require.Equal(t, http.StatusCreated, code, errorCode(env))
	var created bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// チェックインの24時間を切ったらキャンセルできない
	ts.Clock.Set(time.Date(2026, 1, 21, 0, 0, 1, 0, time.UTC))
	code, env = ts.do(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "CANCELLATION_DEADLINE_PASSED", errorCode(env))

	// ちょうど24時間前はキャンセルできる
	ts.Clock.Set(time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC))
	code, env = ts.do(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", alice, nil)
	assert.Equal(t, http.StatusOK, code, errorCode(env))
}

func TestBookingFlow_Rejections(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.signupAndLogin(t, "Owner", "owner@example.com", "owner")
	alice := ts.signupAndLogin(t, "Alice", "alice@example.com", "customer")
	_, roomID := ts.createHotelWithRoom(t, owner, 100.0, 2)

	tests := []struct {
		name     string
		token    string
		roomID   string
		in, out  string
		guests   int
		wantCode int
		wantErr  string
	}{
		{"10人は定員超過", alice, roomID, "2026-02-01", "2026-02-02", 10, http.StatusBadRequest, "INVALID_CAPACITY"},
		{"客室の定員超過", alice, roomID, "2026-02-01", "2026-02-02", 3, http.StatusBadRequest, "INVALID_CAPACITY"},
		{"人数上限は存在確認より先", alice, "missing-room", "2026-02-01", "2026-02-02", 10, http.StatusBadRequest, "INVALID_CAPACITY"},
		{"存在しない客室", alice, "missing-room", "2026-02-01", "2026-02-02", 1, http.StatusNotFound, "ROOM_NOT_FOUND"},
		{"0人", alice, roomID, "2026-02-01", "2026-02-02", 0, http.StatusBadRequest, "INVALID_REQUEST"},
		{"期間が逆転", alice, roomID, "2026-02-05", "2026-02-01", 1, http.StatusBadRequest, "INVALID_REQUEST"},
		{"0泊", alice, roomID, "2026-02-01", "2026-02-01", 1, http.StatusBadRequest, "INVALID_DATES"},
		{"過去のチェックイン", alice, roomID, "2026-01-19", "2026-01-21", 1, http.StatusBadRequest, "INVALID_DATES"},
		{"日付の形式が不正", alice, roomID, "2026/02/01", "2026-02-02", 1, http.StatusBadRequest, "INVALID_REQUEST"},
		{"オーナーは予約できない", owner, roomID, "2026-02-01", "2026-02-02", 1, http.StatusForbidden, "FORBIDDEN"},
		{"トークンなし", "", roomID, "2026-02-01", "2026-02-02", 1, http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := ts.book(t, tt.token, tt.roomID, tt.in, tt.out, tt.guests)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantErr, errorCode(env))
		})
	}

	// 当日チェックインは受け付ける
	code, env := ts.book(t, alice, roomID, "2026-01-20", "2026-01-21", 1)
	assert.Equal(t, http.StatusCreated, code, errorCode(env))
}

func TestBookingFlow_ConcurrentSameRoom(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.signupAndLogin(t, "Owner", "owner@example.com", "owner")
	_, roomID := ts.createHotelWithRoom(t, owner, 120.0, 2)

	const n = 10
	tokens := make([]string, n)
	for i := 0; i < n; i++ {
		tokens[i] = ts.signupAndLogin(t, fmt.Sprintf("Guest%d", i), fmt.Sprintf("guest%d@example.com", i), "customer")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		rejected int
		start    = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			<-start
			code, env := ts.book(t, token, roomID, "2026-03-01", "2026-03-03", 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case code == http.StatusCreated:
				success++
			case code == http.StatusBadRequest && errorCode(env) == "ROOM_NOT_AVAILABLE":
				rejected++
			}
		}(tokens[i])
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, success, "同じ客室・期間の予約は1件だけ成功する")
	assert.Equal(t, n-1, rejected)
}

func TestCatalogFlow(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.signupAndLogin(t, "Owner", "owner@example.com", "owner")
	other := ts.signupAndLogin(t, "Other", "other@example.com", "owner")
	alice := ts.signupAndLogin(t, "Alice", "alice@example.com", "customer")

	hotelID, _ := ts.createHotelWithRoom(t, owner, 150.0, 2)

	// 顧客はホテルを登録できない
	code, env := ts.do(t, http.MethodPost, "/api/hotels", alice, map[string]interface{}{
		"name": "X", "city": "Tokyo", "country": "Japan",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errorCode(env))

	// 所有者以外は客室を追加できない
	code, env = ts.do(t, http.MethodPost, "/api/hotels/"+hotelID+"/rooms", other, map[string]interface{}{
		"roomNumber": "201", "roomType": "single", "pricePerNight": 80.0, "maxOccupancy": 1,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errorCode(env))

	// 同じ部屋番号は登録できない
	code, env = ts.do(t, http.MethodPost, "/api/hotels/"+hotelID+"/rooms", owner, map[string]interface{}{
		"roomNumber": "101", "roomType": "single", "pricePerNight": 80.0, "maxOccupancy": 1,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ROOM_ALREADY_EXISTS", errorCode(env))

	code, env = ts.do(t, http.MethodPost, "/api/hotels/"+hotelID+"/rooms", owner, map[string]interface{}{
		"roomNumber": "102", "roomType": "suite", "pricePerNight": 300.0, "maxOccupancy": 4,
	})
	require.Equal(t, http.StatusCreated, code, errorCode(env))

	// 詳細には全客室が含まれる
	code, env = ts.do(t, http.MethodGet, "/api/hotels/"+hotelID, alice, nil)
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		ID    string `json:"id"`
		Rooms []struct {
			RoomNumber string `json:"roomNumber"`
		} `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Len(t, detail.Rooms, 2)

	code, env = ts.do(t, http.MethodGet, "/api/hotels/unknown", alice, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "HOTEL_NOT_FOUND", errorCode(env))

	// 検索（都市は大文字小文字を区別しない、最安値を返す）
	code, env = ts.do(t, http.MethodGet, "/api/hotels?city=naha", alice, nil)
	require.Equal(t, http.StatusOK, code)
	var results []struct {
		ID               string   `json:"id"`
		MinPricePerNight *float64 `json:"minPricePerNight"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	require.NotNil(t, results[0].MinPricePerNight)
	assert.Equal(t, 150.0, *results[0].MinPricePerNight)

	code, env = ts.do(t, http.MethodGet, "/api/hotels?city=naha&minPrice=200", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1, "価格帯に合う客室が1つでもあれば対象")

	code, env = ts.do(t, http.MethodGet, "/api/hotels?city=naha&maxPrice=100", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Empty(t, results)

	code, env = ts.do(t, http.MethodGet, "/api/hotels?city=tokyo", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Empty(t, results)
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signupAndLogin(t, "Alice", "alice@example.com", "customer")

	// メールアドレスは大文字小文字を区別せず一意
	code, env := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Alice2", "email": "ALICE@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", errorCode(env))

	code, env = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(env))

	code, env = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(env))

	code, env = ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Bob", "email": "not-an-email", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(env))
}
