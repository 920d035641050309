package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/clock"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/metrics"
)

// BookingServiceConfig は BookingService の動作設定
type BookingServiceConfig struct {
	// EarliestDate がゼロ値でなければ、この日より前のチェックインは受け付けない
	EarliestDate time.Time
	Retry        RetryPolicy
	Metrics      *metrics.Metrics
}

// BookingService は予約の作成とキャンセルを管理する
type BookingService struct {
	txManager    transaction.Manager
	bookingRepo  booking.Repository
	validator    *BookingValidator
	availability *AvailabilityChecker
	locker       RoomLocker
	clock        clock.Clock
	retry        RetryPolicy
	metrics      *metrics.Metrics
	log          *zap.Logger
}

func NewBookingService(txm transaction.Manager, br booking.Repository, rooms RoomLookup, locker RoomLocker, clk clock.Clock, cfg BookingServiceConfig) *BookingService {
	if locker == nil {
		locker = NewLocalRoomLocker()
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &BookingService{
		txManager:    txm,
		bookingRepo:  br,
		validator:    NewBookingValidator(rooms, clk, cfg.EarliestDate),
		availability: NewAvailabilityChecker(br),
		locker:       locker,
		clock:        clk,
		retry:        cfg.Retry,
		metrics:      cfg.Metrics,
		log:          logger.Named("booking"),
	}
}

// ReserveInput は予約作成の入力
type ReserveInput struct {
	UserID   string
	Role     user.Role
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Reserve は予約を作成する
// 空室確認と作成は客室ロックの内側で、同一トランザクションとして実行する
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (*booking.Booking, error) {
	if in.Role != user.RoleCustomer {
		s.reject("reserve", in.RoomID, booking.ErrForbidden)
		return nil, booking.ErrForbidden
	}

	v, err := s.validator.Validate(ctx, in)
	if err != nil {
		s.reject("reserve", in.RoomID, err)
		return nil, err
	}

	start := time.Now()
	unlock, err := s.locker.LockRoom(ctx, v.Room.ID)
	s.metrics.ObserveRoomLock(err == nil, time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			s.metrics.RecordBooking(metrics.ResultLockFailed)
			return nil, fmt.Errorf("客室ロックの取得に失敗: %w", ctx.Err())
		}
		// ロックがなくてもトランザクションの分離レベルと排他制約で二重予約は防げる
		s.log.Warn("客室ロックを取得できませんでした。トランザクションのみで続行します",
			zap.String("room_id", v.Room.ID), zap.Error(err))
		unlock = func() {}
	}
	defer unlock()

	var created *booking.Booking
	err = retryOnConflict(ctx, s.retry, s.onRetry("reserve", v.Room.ID), func() error {
		b, err := s.reserveOnce(ctx, v)
		created = b
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrRoomNotAvailable):
			s.reject("reserve", v.Room.ID, err)
		default:
			s.metrics.RecordBooking(metrics.ResultError)
			s.log.Error("予約作成に失敗", zap.String("room_id", v.Room.ID), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.RecordBooking(metrics.ResultSuccess)
	s.log.Info("予約を作成しました",
		zap.String("booking_id", created.ID),
		zap.String("room_id", created.RoomID),
		zap.String("stay", created.Stay.String()),
		zap.String("total_price", created.TotalPrice.String()))
	return created, nil
}

// reserveOnce は1回分のトランザクションで空室確認・料金計算・作成を行う
func (s *BookingService) reserveOnce(ctx context.Context, v *ValidatedBooking) (*booking.Booking, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.availability.IsAvailable(ctx, tx, v.Room.ID, v.Stay, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, booking.ErrRoomNotAvailable
	}

	price, err := CalculatePrice(v.Stay, v.Room.PricePerNight)
	if err != nil {
		return nil, err
	}

	b := booking.NewConfirmedBooking(v.UserID, v.Room.ID, v.Room.HotelID, v.Stay, v.Guests, price, s.clock.Now())
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return b, nil
}

// Cancel は予約をキャンセルする
// 検証順: 存在 → 所有者 → 状態 → 期限（チェックインの24時間前まで）
func (s *BookingService) Cancel(ctx context.Context, bookingID, requesterID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.reject("cancel", bookingID, err)
		}
		return nil, err
	}

	// 取得したコピー上で状態遷移を検証し、確定状態の行だけを更新する
	if err := b.Cancel(requesterID, s.clock.Now()); err != nil {
		s.reject("cancel", bookingID, err)
		return nil, err
	}

	var updated *booking.Booking
	err = retryOnConflict(ctx, s.retry, s.onRetry("cancel", b.RoomID), func() error {
		tx, err := s.txManager.Begin(ctx)
		if err != nil {
			return fmt.Errorf("トランザクション開始に失敗: %w", err)
		}
		defer tx.Rollback()

		u, err := s.bookingRepo.UpdateStatus(ctx, tx, b.ID, b.Status, *b.CancelledAt)
		if err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("コミットに失敗: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyCancelled) {
			s.reject("cancel", bookingID, err)
		}
		return nil, err
	}

	s.log.Info("予約をキャンセルしました", zap.String("booking_id", bookingID))
	return updated, nil
}

// GetBooking は予約を取得する（本人の予約のみ）
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(requesterID) {
		return nil, booking.ErrForbidden
	}
	return b, nil
}

// ListUserBookings はユーザーの予約一覧を新しい順に返す（status が空なら全件）
func (s *BookingService) ListUserBookings(ctx context.Context, userID string, status booking.Status) ([]*booking.Details, error) {
	if status != "" && !status.IsValid() {
		return nil, booking.ErrInvalidStatus
	}
	list, err := s.bookingRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	return list, nil
}

func (s *BookingService) reject(op, id string, err error) {
	if op == "reserve" {
		if errors.Is(err, booking.ErrRoomNotAvailable) {
			s.metrics.RecordBooking(metrics.ResultUnavailable)
		} else {
			s.metrics.RecordBooking(metrics.ResultRejected)
		}
	}
	s.log.Info("予約要求を拒否しました", zap.String("op", op), zap.String("id", id), zap.String("reason", errorKind(err)))
}

func (s *BookingService) onRetry(op, roomID string) func(int, error) {
	return func(attempt int, err error) {
		s.metrics.RecordTxRetry()
		s.log.Warn("トランザクションが競合したため再試行します",
			zap.String("op", op), zap.String("room_id", roomID), zap.Int("attempt", attempt), zap.Error(err))
	}
}

// errorKind はログ用にエラーの種別名を返す
func errorKind(err error) string {
	switch {
	case errors.Is(err, booking.ErrInvalidCapacity):
		return "InvalidCapacity"
	case errors.Is(err, room.ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, booking.ErrInvalidRequest):
		return "InvalidRequest"
	case errors.Is(err, booking.ErrInvalidDates):
		return "InvalidDates"
	case errors.Is(err, booking.ErrRoomNotAvailable):
		return "RoomNotAvailable"
	case errors.Is(err, booking.ErrBookingNotFound):
		return "BookingNotFound"
	case errors.Is(err, booking.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return "AlreadyCancelled"
	case errors.Is(err, booking.ErrCancellationDeadlinePassed):
		return "CancellationDeadlinePassed"
	default:
		return err.Error()
	}
}
