package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}

// WithTestIdentity は認証済みの呼び出し元を設定したハンドラーを返す
func WithTestIdentity(userID string, role user.Role, h echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		api.SetIdentity(c, api.Identity{UserID: userID, Role: role})
		return h(c)
	}
}
