package user

import "errors"

// User ドメインのエラー定義
var (
	ErrUserNotFound       = errors.New("ユーザーが見つかりません")
	ErrEmailAlreadyExists = errors.New("メールアドレスは既に登録されています")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrNameRequired       = errors.New("名前は必須です")
	ErrEmailRequired      = errors.New("メールアドレスは必須です")
	ErrInvalidRole        = errors.New("権限が不正です")
	ErrPasswordTooShort   = errors.New("パスワードは6文字以上である必要があります")
)
