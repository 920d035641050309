package hotel

import (
	"strings"
	"time"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

// Hotel はホテルエンティティを表す
type Hotel struct {
	ID           string
	OwnerID      string
	Name         string
	Description  string
	City         string
	Country      string
	Amenities    []string
	Rating       float64
	TotalReviews int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewHotel は新しいホテルを作成する（評価とレビュー数は0から開始）
func NewHotel(ownerID, name, description, city, country string, amenities []string) *Hotel {
	now := time.Now()
	if amenities == nil {
		amenities = []string{}
	}
	return &Hotel{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: description,
		City:        strings.TrimSpace(city),
		Country:     strings.TrimSpace(country),
		Amenities:   amenities,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy は指定ユーザーがホテルの所有者かを返す
func (h *Hotel) IsOwnedBy(userID string) bool {
	return h.OwnerID != "" && h.OwnerID == userID
}

// Validate はホテルの検証を行う
func (h *Hotel) Validate() error {
	if h.OwnerID == "" {
		return ErrOwnerIDRequired
	}
	if h.Name == "" {
		return ErrHotelNameRequired
	}
	if h.City == "" {
		return ErrCityRequired
	}
	if h.Country == "" {
		return ErrCountryRequired
	}
	return nil
}

// SearchFilter はホテル検索条件
// nil / 空文字のフィールドは条件に含めない
type SearchFilter struct {
	City      string
	Country   string
	MinRating *float64
	MinPrice  *money.Money
	MaxPrice  *money.Money
}

// HasPriceBand は料金帯の条件があるかを返す
func (f SearchFilter) HasPriceBand() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// InPriceBand は1泊料金が料金帯に含まれるかを返す
func (f SearchFilter) InPriceBand(price money.Money) bool {
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}

// Summary は検索結果の1件（料金帯内の最安1泊料金付き）
type Summary struct {
	Hotel            *Hotel
	MinPricePerNight *money.Money
}
