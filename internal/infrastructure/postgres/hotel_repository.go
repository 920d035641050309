package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
)

type hotelRow struct {
	ID           string         `db:"id"`
	OwnerID      string         `db:"owner_id"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	City         string         `db:"city"`
	Country      string         `db:"country"`
	Amenities    pq.StringArray `db:"amenities"`
	Rating       float64        `db:"rating"`
	TotalReviews int            `db:"total_reviews"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type hotelSummaryRow struct {
	hotelRow
	MinPrice *money.Money `db:"min_price_per_night"`
}

var hotelColumns = []string{
	"h.id", "h.owner_id", "h.name", "h.description", "h.city", "h.country",
	"h.amenities", "h.rating", "h.total_reviews", "h.created_at", "h.updated_at",
}

type HotelRepository struct{ db *sqlx.DB }

func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *hotel.Hotel) error {
	query, args, err := psql.Insert("hotels").
		Columns("owner_id", "name", "description", "city", "country", "amenities", "rating", "total_reviews", "created_at", "updated_at").
		Values(h.OwnerID, h.Name, h.Description, h.City, h.Country, pq.Array(h.Amenities), h.Rating, h.TotalReviews, h.CreatedAt, h.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("ホテル作成クエリの構築に失敗: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		return fmt.Errorf("ホテル作成に失敗: %w", err)
	}
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	query, args, err := psql.Select(hotelColumns...).From("hotels h").Where(squirrel.Eq{"h.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ホテル取得クエリの構築に失敗: %w", err)
	}
	var row hotelRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, hotel.ErrHotelNotFound
		}
		return nil, fmt.Errorf("ホテル取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// Search は都市・国（大文字小文字を区別しない）、評価、料金帯で絞り込む
// 料金帯の指定がある場合は帯内の客室を持つホテルのみを返す
func (r *HotelRepository) Search(ctx context.Context, f hotel.SearchFilter) ([]*hotel.Summary, error) {
	band := squirrel.And{squirrel.Expr("rm.hotel_id = h.id")}
	if f.MinPrice != nil {
		band = append(band, squirrel.GtOrEq{"rm.price_per_night": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		band = append(band, squirrel.LtOrEq{"rm.price_per_night": *f.MaxPrice})
	}
	bandSQL, bandArgs, err := band.ToSql()
	if err != nil {
		return nil, fmt.Errorf("料金帯条件の構築に失敗: %w", err)
	}

	q := psql.Select(hotelColumns...).
		Column(squirrel.Expr("(SELECT MIN(rm.price_per_night) FROM rooms rm WHERE "+bandSQL+") AS min_price_per_night", bandArgs...)).
		From("hotels h")

	if f.City != "" {
		q = q.Where(squirrel.Expr("lower(h.city) = lower(?)", f.City))
	}
	if f.Country != "" {
		q = q.Where(squirrel.Expr("lower(h.country) = lower(?)", f.Country))
	}
	if f.MinRating != nil {
		q = q.Where(squirrel.GtOrEq{"h.rating": *f.MinRating})
	}
	if f.HasPriceBand() {
		q = q.Where(squirrel.Expr("EXISTS (SELECT 1 FROM rooms rm WHERE "+bandSQL+")", bandArgs...))
	}

	query, args, err := q.OrderBy("h.created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ホテル検索クエリの構築に失敗: %w", err)
	}

	var rows []hotelSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("ホテル検索に失敗: %w", err)
	}
	result := make([]*hotel.Summary, len(rows))
	for i := range rows {
		result[i] = &hotel.Summary{Hotel: rows[i].toEntity(), MinPricePerNight: rows[i].MinPrice}
	}
	return result, nil
}

func (row *hotelRow) toEntity() *hotel.Hotel {
	amenities := []string(row.Amenities)
	if amenities == nil {
		amenities = []string{}
	}
	return &hotel.Hotel{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Name:         row.Name,
		Description:  row.Description,
		City:         row.City,
		Country:      row.Country,
		Amenities:    amenities,
		Rating:       row.Rating,
		TotalReviews: row.TotalReviews,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

var _ hotel.Repository = (*HotelRepository)(nil)
