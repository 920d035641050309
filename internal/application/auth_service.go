package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanosuguru/go-hotel-reservation/internal/auth"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

// TokenIssuer はアクセストークンを発行する
type TokenIssuer interface {
	GenerateAccessToken(userID, role string) (string, error)
}

// AuthService はユーザー登録とログインを行う
type AuthService struct {
	userRepo user.Repository
	hasher   auth.PasswordHasher
	tokens   TokenIssuer
}

func NewAuthService(ur user.Repository, hasher auth.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{userRepo: ur, hasher: hasher, tokens: tokens}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     user.Role
}

// Signup はユーザーを登録する（メールアドレスは小文字で一意）
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*user.User, error) {
	if len(in.Password) < user.MinPasswordLength {
		return nil, user.ErrPasswordTooShort
	}

	u := user.NewUser(in.Name, in.Email, "", in.Phone, in.Role)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, u.Email)
	if err == nil {
		return nil, user.ErrEmailAlreadyExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	u.PasswordHash = hash

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("ユーザー作成に失敗: %w", err)
	}
	return u, nil
}

// LoginResult はログイン結果
type LoginResult struct {
	Token string
	User  *user.User
}

// Login はメールアドレスとパスワードで認証しトークンを発行する
// メールアドレス不明とパスワード不一致は区別しない
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("パスワード照合に失敗: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("トークン発行に失敗: %w", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}
