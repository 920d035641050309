package api

import (
	"github.com/labstack/echo/v4"
)

// Response は全エンドポイント共通のレスポンス形式
// 成功時は error が null、失敗時は data が null になる
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

// Success は成功レスポンスを返す
func Success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

// Failure はエラーコード付きの失敗レスポンスを返す
func Failure(c echo.Context, status int, code string) error {
	return c.JSON(status, Response{Success: false, Error: &code})
}
