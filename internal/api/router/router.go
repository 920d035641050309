package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/api/handler"
	"github.com/sanosuguru/go-hotel-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-hotel-reservation/internal/config"
	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/metrics"
)

// Deps はルーティングに必要な依存をまとめたもの
type Deps struct {
	AuthService    handler.AuthServiceInterface
	CatalogService handler.CatalogServiceInterface
	BookingService handler.BookingServiceInterface
	Tokens         middleware.TokenVerifier
	Metrics        *metrics.Metrics
	MetricsConfig  config.MetricsConfig
	// Gatherer は /metrics で公開するレジストリ（nil の場合はデフォルト）
	Gatherer     prometheus.Gatherer
	HealthChecks []handler.HealthCheck
}

// New は Echo インスタンスを作成し、全ルートを登録する
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e)
	if d.Metrics != nil {
		e.Use(middleware.PrometheusMiddleware(d.Metrics))
	}

	// ヘルスチェック・メトリクス
	e.GET("/health", handler.NewHealthHandler(d.HealthChecks...).Check)
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(d.MetricsConfig))

	authHandler := handler.NewAuthHandler(d.AuthService)
	hotelHandler := handler.NewHotelHandler(d.CatalogService)
	bookingHandler := handler.NewBookingHandler(d.BookingService)

	apiGroup := e.Group("/api")

	// 認証（トークン不要）
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	requireAuth := middleware.JWTAuth(d.Tokens)

	// ホテル・客室
	hotels := apiGroup.Group("/hotels", requireAuth)
	hotels.POST("", hotelHandler.Create)
	hotels.GET("", hotelHandler.Search)
	hotels.GET("/:hotelId", hotelHandler.GetByID)
	hotels.POST("/:hotelId/rooms", hotelHandler.CreateRoom)

	// 予約
	bookings := apiGroup.Group("/bookings", requireAuth)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:bookingId", bookingHandler.GetByID)
	bookings.PUT("/:bookingId/cancel", bookingHandler.Cancel)

	return e
}
