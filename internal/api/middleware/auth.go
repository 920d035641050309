package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/auth"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// TokenVerifier はアクセストークンを検証する
type TokenVerifier interface {
	ParseAndValidate(token string) (*auth.Claims, error)
}

// JWTAuth は Authorization: Bearer <token> を検証し、呼び出し元を記録する
// ヘッダーがない、またはトークンが不正な場合は 401 UNAUTHORIZED
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return api.ErrUnauthorized
			}
			claims, err := v.ParseAndValidate(strings.TrimSpace(token))
			if err != nil {
				return api.ErrUnauthorized
			}
			api.SetIdentity(c, api.Identity{UserID: claims.UserID(), Role: user.Role(claims.Role)})
			return next(c)
		}
	}
}
