package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/daterange"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/money"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

type bookingRow struct {
	ID           string      `db:"id"`
	UserID       string      `db:"user_id"`
	RoomID       string      `db:"room_id"`
	HotelID      string      `db:"hotel_id"`
	CheckInDate  time.Time   `db:"check_in_date"`
	CheckOutDate time.Time   `db:"check_out_date"`
	Guests       int         `db:"guests"`
	TotalPrice   money.Money `db:"total_price"`
	Status       string      `db:"status"`
	CreatedAt    time.Time   `db:"created_at"`
	CancelledAt  *time.Time  `db:"cancelled_at"`
}

type bookingDetailsRow struct {
	bookingRow
	HotelName  string `db:"hotel_name"`
	RoomNumber string `db:"room_number"`
	RoomType   string `db:"room_type"`
}

var bookingColumns = []string{
	"b.id", "b.user_id", "b.room_id", "b.hotel_id", "b.check_in_date", "b.check_out_date",
	"b.guests", "b.total_price", "b.status", "b.created_at", "b.cancelled_at",
}

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindOverlapping は期間が重なる確定予約を FOR UPDATE で取得する
// 半開区間のため check_out = 新規 check_in の予約は含まない
func (r *BookingRepository) FindOverlapping(ctx context.Context, tx transaction.Tx, roomID string, stay daterange.DateRange, excludeID string) ([]*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, errNoTx
	}
	q := psql.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.room_id": roomID, "b.status": string(booking.StatusConfirmed)}).
		Where(squirrel.Lt{"b.check_in_date": stay.CheckOut.Format(daterange.Layout)}).
		Where(squirrel.Gt{"b.check_out_date": stay.CheckIn.Format(daterange.Layout)})
	if excludeID != "" {
		q = q.Where(squirrel.NotEq{"b.id": excludeID})
	}
	query, args, err := q.Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, fmt.Errorf("重複予約クエリの構築に失敗: %w", err)
	}
	var rows []bookingRow
	if err := sqlxTx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(fmt.Errorf("重複予約の取得に失敗: %w", err))
	}
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// Create は予約を作成する
// 排他制約違反（同時に確定した重複予約）は ErrRoomNotAvailable
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errNoTx
	}
	query, args, err := psql.Insert("bookings").
		Columns("user_id", "room_id", "hotel_id", "check_in_date", "check_out_date", "guests", "total_price", "status", "created_at").
		Values(b.UserID, b.RoomID, b.HotelID,
			b.Stay.CheckIn.Format(daterange.Layout), b.Stay.CheckOut.Format(daterange.Layout),
			b.Guests, b.TotalPrice, string(b.Status), b.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("予約作成クエリの構築に失敗: %w", err)
	}
	if err := sqlxTx.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
		if isExclusionViolation(err) {
			return booking.ErrRoomNotAvailable
		}
		return mapError(fmt.Errorf("予約作成に失敗: %w", err))
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings b").Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("予約取得クエリの構築に失敗: %w", err)
	}
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// UpdateStatus は確定状態の予約のみを更新する
// 更新対象がなければ存在有無で ErrBookingNotFound / ErrAlreadyCancelled を返す
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, id string, status booking.Status, cancelledAt time.Time) (*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, errNoTx
	}
	u := psql.Update("bookings b").
		Set("status", string(status)).
		Where(squirrel.Eq{"b.id": id, "b.status": string(booking.StatusConfirmed)})
	if status == booking.StatusCancelled {
		u = u.Set("cancelled_at", cancelledAt)
	}
	query, args, err := u.Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("予約更新クエリの構築に失敗: %w", err)
	}
	var row bookingRow
	if err := sqlxTx.GetContext(ctx, &row, query, args...); err != nil {
		if isInvalidText(err) {
			return nil, booking.ErrBookingNotFound
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, mapError(fmt.Errorf("予約更新に失敗: %w", err))
		}
		var exists bool
		if err := sqlxTx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id); err != nil {
			return nil, mapError(fmt.Errorf("予約の存在確認に失敗: %w", err))
		}
		if !exists {
			return nil, booking.ErrBookingNotFound
		}
		return nil, booking.ErrAlreadyCancelled
	}
	return row.toEntity(), nil
}

// ListByUser はホテル名・客室情報を結合して新しい順に返す
func (r *BookingRepository) ListByUser(ctx context.Context, userID string, status booking.Status) ([]*booking.Details, error) {
	q := psql.Select(bookingColumns...).
		Columns("h.name AS hotel_name", "rm.room_number", "rm.room_type").
		From("bookings b").
		Join("rooms rm ON rm.id = b.room_id").
		Join("hotels h ON h.id = b.hotel_id").
		Where(squirrel.Eq{"b.user_id": userID})
	if status != "" {
		q = q.Where(squirrel.Eq{"b.status": string(status)})
	}
	query, args, err := q.OrderBy("b.created_at DESC", "b.seq DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("予約一覧クエリの構築に失敗: %w", err)
	}
	var rows []bookingDetailsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	result := make([]*booking.Details, len(rows))
	for i := range rows {
		result[i] = &booking.Details{
			Booking:    rows[i].toEntity(),
			HotelName:  rows[i].HotelName,
			RoomNumber: rows[i].RoomNumber,
			RoomType:   rows[i].RoomType,
		}
	}
	return result, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query, args, err := psql.Select("status", "COUNT(*) AS count").From("bookings").GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("予約集計クエリの構築に失敗: %w", err)
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("予約集計に失敗: %w", err)
	}
	counts := map[booking.Status]int{
		booking.StatusConfirmed: 0,
		booking.StatusCancelled: 0,
	}
	for _, row := range rows {
		counts[booking.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (row *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID:          row.ID,
		UserID:      row.UserID,
		RoomID:      row.RoomID,
		HotelID:     row.HotelID,
		Stay:        daterange.New(row.CheckInDate.UTC(), row.CheckOutDate.UTC()),
		Guests:      row.Guests,
		TotalPrice:  row.TotalPrice,
		Status:      booking.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		CancelledAt: row.CancelledAt,
	}
}

var _ booking.Repository = (*BookingRepository)(nil)
