package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/api/router"
	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/auth"
	"github.com/sanosuguru/go-hotel-reservation/internal/config"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/clock"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-hotel-reservation/internal/worker"
)

func main() {
	if err := run(); err != nil {
		logger.Error("起動エラー", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定が不正です: %w", err)
	}

	log := logger.Init(cfg.App.Env, cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	m := metrics.Init()

	// ストレージ（postgres / memory）
	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Redis（有効な場合のみ分散ロックと客室キャッシュを使う）
	rc, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer rc.Close()

	var roomLookup application.RoomLookup = store.Rooms
	if rc.RoomCache != nil {
		roomLookup = application.NewCachedRoomLookup(store.Rooms, rc.RoomCache, cfg.Redis.RoomTTL)
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := application.NewAuthService(store.Users, auth.NewBcryptPasswordHasher(), tokens)
	catalogService := application.NewCatalogService(store.Hotels, store.Rooms)
	bookingService := application.NewBookingService(store.TxManager, store.Bookings, roomLookup, rc.RoomLocker, clock.System{},
		application.BookingServiceConfig{
			EarliestDate: cfg.Booking.EarliestBookingDate(),
			Retry: application.RetryPolicy{
				MaxRetries: cfg.Booking.TxMaxRetries,
				BaseDelay:  cfg.Booking.TxRetryBaseDelay,
				MaxDelay:   cfg.Booking.TxRetryMaxDelay,
			},
			Metrics: m,
		})

	e := router.New(router.Deps{
		AuthService:    authService,
		CatalogService: catalogService,
		BookingService: bookingService,
		Tokens:         tokens,
		Metrics:        m,
		MetricsConfig:  cfg.Metrics,
		HealthChecks:   append(store.HealthChecks, rc.HealthChecks...),
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// 予約数のメトリクス集計
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reporter := worker.NewBookingStatsReporter(store.Bookings, m, cfg.Booking.StatsInterval)
	go reporter.Start(ctx)

	// サーバー起動
	errCh := make(chan error, 1)
	go func() {
		log.Info("サーバー起動",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.App.Env),
			zap.String("storage", cfg.App.Storage),
			zap.Bool("redis", cfg.Redis.Enabled),
		)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("シグナル受信", zap.String("signal", sig.String()))
	case err := <-errCh:
		reporter.Stop()
		return fmt.Errorf("サーバー起動に失敗: %w", err)
	}

	log.Info("サーバーをシャットダウンしています...")
	reporter.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーシャットダウンに失敗: %w", err)
	}

	log.Info("サーバーが正常にシャットダウンしました")
	return nil
}
