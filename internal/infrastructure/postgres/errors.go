package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/transaction"
)

// errNoTx はトランザクション必須の操作に postgres 以外の Tx が渡された場合のエラー
var errNoTx = errors.New("postgres のトランザクションが必要です")

// mapError は再試行可能な postgres エラーを transaction.ErrConflict に変換する
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return fmt.Errorf("%w: %v", transaction.ErrConflict, err)
	}
	return err
}

// isConflict は直列化失敗・デッドロックかを返す
func isConflict(err error) bool {
	code := pqCode(err)
	return code == pgerrcode.SerializationFailure || code == pgerrcode.DeadlockDetected
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pgerrcode.UniqueViolation
}

func isExclusionViolation(err error) bool {
	return pqCode(err) == pgerrcode.ExclusionViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pgerrcode.ForeignKeyViolation
}

// isInvalidText は UUID 列に UUID 以外の文字列を渡した場合など、値の形式不正かを返す
// 該当行が存在しないものとして扱う
func isInvalidText(err error) bool {
	return pqCode(err) == pgerrcode.InvalidTextRepresentation
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
