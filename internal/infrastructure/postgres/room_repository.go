package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
)

type roomRow struct {
	ID            string      `db:"id"`
	HotelID       string      `db:"hotel_id"`
	RoomNumber    string      `db:"room_number"`
	RoomType      string      `db:"room_type"`
	PricePerNight money.Money `db:"price_per_night"`
	MaxOccupancy  int         `db:"max_occupancy"`
	CreatedAt     time.Time   `db:"created_at"`
}

var roomColumns = []string{"id", "hotel_id", "room_number", "room_type", "price_per_night", "max_occupancy", "created_at"}

type RoomRepository struct{ db *sqlx.DB }

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create は客室を作成する
// (hotel_id, room_number) の一意制約違反は ErrRoomAlreadyExists、ホテル不在は ErrHotelNotFound
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	query, args, err := psql.Insert("rooms").
		Columns("hotel_id", "room_number", "room_type", "price_per_night", "max_occupancy", "created_at").
		Values(rm.HotelID, rm.RoomNumber, rm.RoomType, rm.PricePerNight, rm.MaxOccupancy, rm.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("客室作成クエリの構築に失敗: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&rm.ID); err != nil {
		switch {
		case isUniqueViolation(err):
			return room.ErrRoomAlreadyExists
		case isForeignKeyViolation(err):
			return hotel.ErrHotelNotFound
		}
		return fmt.Errorf("客室作成に失敗: %w", err)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	query, args, err := psql.Select(roomColumns...).From("rooms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("客室取得クエリの構築に失敗: %w", err)
	}
	var row roomRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("客室取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RoomRepository) GetByHotelID(ctx context.Context, hotelID string) ([]*room.Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		OrderBy("room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("客室一覧クエリの構築に失敗: %w", err)
	}
	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("客室一覧取得に失敗: %w", err)
	}
	result := make([]*room.Room, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (row *roomRow) toEntity() *room.Room {
	return &room.Room{
		ID:            row.ID,
		HotelID:       row.HotelID,
		RoomNumber:    row.RoomNumber,
		RoomType:      row.RoomType,
		PricePerNight: row.PricePerNight,
		MaxOccupancy:  row.MaxOccupancy,
		CreatedAt:     row.CreatedAt,
	}
}

var _ room.Repository = (*RoomRepository)(nil)
