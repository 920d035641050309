package transaction

import (
	"context"
	"errors"
)

// ErrConflict は再試行すれば成功しうるストレージ側の競合（直列化失敗・デッドロック）を表す
var ErrConflict = errors.New("トランザクションが競合しました")

// Tx はトランザクションを表すインターフェース
// ドメイン層がインフラ層（sqlx等）に依存しないようにするための抽象化
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
// 開始されるトランザクションは読み取りと書き込みを直列化可能な分離レベルで実行する
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
