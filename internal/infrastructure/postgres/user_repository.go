package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Phone        sql.NullString `db:"phone"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
}

var userColumns = []string{"id", "name", "email", "password_hash", "phone", "role", "created_at"}

type UserRepository struct{ db *sqlx.DB }

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert("users").
		Columns("name", "email", "password_hash", "phone", "role", "created_at").
		Values(u.Name, u.Email, u.PasswordHash, sql.NullString{String: u.Phone, Valid: u.Phone != ""}, string(u.Role), u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("ユーザー作成クエリの構築に失敗: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("ユーザー作成に失敗: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail は正規化済みのメールアドレスで検索する
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": user.NormalizeEmail(email)})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ユーザー取得クエリの構築に失敗: %w", err)
	}
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return &user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Phone:        row.Phone.String,
		Role:         user.Role(row.Role),
		CreatedAt:    row.CreatedAt,
	}, nil
}

var _ user.Repository = (*UserRepository)(nil)
