package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-hotel-reservation/internal/pkg/logger"
)

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ドメインエラーと echo.HTTPError を共通のエラーレスポンスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code := StatusFor(err)

	var he *echo.HTTPError
	if status == http.StatusInternalServerError && errors.As(err, &he) {
		status = he.Code
		code = codeForStatus(he.Code)
	}

	// エラーログを出力（5xx エラーの場合）
	if status >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", status),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	var sendErr error
	if c.Request().Method == http.MethodHead {
		sendErr = c.NoContent(status)
	} else {
		sendErr = Failure(c, status, code)
	}
	if sendErr != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(sendErr))
	}
}
