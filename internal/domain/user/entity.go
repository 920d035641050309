package user

import (
	"strings"
	"time"
)

// Role はユーザーの権限を表す
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// IsValid は定義済みの権限かを返す
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// MinPasswordLength はパスワードの最小文字数
const MinPasswordLength = 6

// User はユーザーエンティティを表す
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	CreatedAt    time.Time
}

// NewUser は新しいユーザーを作成する（メールアドレスは小文字に正規化）
func NewUser(name, email, passwordHash, phone string, role Role) *User {
	if role == "" {
		role = RoleCustomer
	}
	return &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Phone:        phone,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// NormalizeEmail はメールアドレスを比較用に正規化する
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}
