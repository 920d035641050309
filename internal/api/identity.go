package api

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
)

// Identity は認証済みリクエストの呼び出し元
type Identity struct {
	UserID string
	Role   user.Role
}

// SetIdentity は認証ミドルウェアが呼び出し元を記録する
func SetIdentity(c echo.Context, id Identity) {
	c.Set(userIDKey, id.UserID)
	c.Set(userRoleKey, id.Role)
}

// CurrentIdentity は認証ミドルウェアが記録した呼び出し元を返す
// 未認証の場合は ErrUnauthorized
func CurrentIdentity(c echo.Context) (Identity, error) {
	userID, _ := c.Get(userIDKey).(string)
	role, _ := c.Get(userRoleKey).(user.Role)
	if userID == "" {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UserID: userID, Role: role}, nil
}
