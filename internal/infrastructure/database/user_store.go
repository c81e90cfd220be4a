package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/pkg/common"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, created_at, last_login`

// CreateUser 新增使用者並回填 ID 與建立時間
func (db *DB) CreateUser(ctx context.Context, u *auth.User) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if pgErrorCode(err) == pgUniqueViolation {
		return common.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail 依 email 取得使用者
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetUserByID 依 ID 取得使用者
func (db *DB) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// UpdateLastLogin 更新最後登入時間
func (db *DB) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := db.exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (db *DB) getUser(ctx context.Context, sql string, arg any) (*auth.User, error) {
	var u auth.User
	err := db.pool.QueryRow(ctx, sql, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
