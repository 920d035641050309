package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/api/handler"
	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/config"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/hotel"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/room"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
	"github.com/sanosuguru/go-hotel-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/go-hotel-reservation/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-hotel-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
)

// storage は選択したストレージのリポジトリ一式
type storage struct {
	Users        user.Repository
	Hotels       hotel.Repository
	Rooms        room.Repository
	Bookings     booking.Repository
	TxManager    transaction.Manager
	HealthChecks []handler.HealthCheck
	close        func()
}

func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// openStorage は STORAGE_DRIVER に応じてリポジトリを作成する
// postgres の場合は起動時にマイグレーションを適用する
func openStorage(cfg *config.Config) (*storage, error) {
	if cfg.App.Storage == "memory" {
		logger.Warn("インメモリストレージで起動します（再起動でデータは消えます）")
		s := memory.NewStore()
		return &storage{
			Users:     memory.NewUserRepository(s),
			Hotels:    memory.NewHotelRepository(s),
			Rooms:     memory.NewRoomRepository(s),
			Bookings:  memory.NewBookingRepository(s),
			TxManager: memory.NewTxManager(),
		}, nil
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("DB接続に失敗: %w", err)
	}
	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("マイグレーションに失敗: %w", err)
	}
	logger.Info("DB接続完了", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	return &storage{
		Users:     postgres.NewUserRepository(db),
		Hotels:    postgres.NewHotelRepository(db),
		Rooms:     postgres.NewRoomRepository(db),
		Bookings:  postgres.NewBookingRepository(db),
		TxManager: postgres.NewTxManager(db),
		HealthChecks: []handler.HealthCheck{{
			Name:  "database",
			Check: func(ctx context.Context) error { return postgres.Ping(ctx, db) },
		}},
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("DB切断に失敗", zap.Error(err))
			}
		},
	}, nil
}

// cache は Redis を使う部品一式（無効な場合はすべて nil）
type cache struct {
	RoomLocker   application.RoomLocker
	RoomCache    application.RoomCache
	HealthChecks []handler.HealthCheck
	client       *goredis.Client
}

func (c *cache) Close() {
	if c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		logger.Warn("Redis切断に失敗", zap.Error(err))
	}
}

// openCache は REDIS_ENABLED の場合に分散ロックと客室キャッシュを作成する
// 無効な場合は RoomLocker が nil になり、プロセス内ロックが使われる
func openCache(cfg *config.Config) (*cache, error) {
	if !cfg.Redis.Enabled {
		return &cache{}, nil
	}

	client, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("Redis接続に失敗: %w", err)
	}
	logger.Info("Redis接続完了", zap.String("addr", cfg.Redis.Addr()))

	locker := redisinfra.NewRoomLocker(redisinfra.NewLockManager(client), redisinfra.RoomLockerConfig{
		TTL:        cfg.Booking.LockTTL,
		Retries:    cfg.Booking.LockRetries,
		RetryDelay: cfg.Booking.LockRetryDelay,
	})

	return &cache{
		RoomLocker: locker,
		RoomCache:  redisinfra.NewRoomCache(client),
		HealthChecks: []handler.HealthCheck{{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisinfra.Ping(ctx, client) },
		}},
		client: client,
	}, nil
}

var (
	_ application.RoomLocker = (*redisinfra.RoomLocker)(nil)
	_ application.RoomCache  = (*redisinfra.RoomCache)(nil)
)
