package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgreSQL 錯誤代碼
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DB PostgreSQL 連線池
type DB struct {
	pool *pgxpool.Pool
}

// New 建立連線池並確認可連線
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	common.LogInfo("資料庫連線成功",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// Ping 確認資料庫可用
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close 關閉連線池
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// exec 執行語句並記錄耗時
func (db *DB) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	tag, err := db.pool.Exec(ctx, sql, args...)
	logQuery("exec", sql, time.Since(start), err)
	return tag, err
}

// query 執行查詢並記錄耗時
func (db *DB) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	logQuery("query", sql, time.Since(start), err)
	return rows, err
}

func logQuery(operation, sql string, took time.Duration, err error) {
	if err != nil {
		common.LogError("資料庫操作失敗",
			zap.String("operation", operation),
			zap.String("query", sql),
			zap.Duration("took", took),
			zap.Error(err),
		)
		return
	}
	common.LogDebug("資料庫操作完成",
		zap.String("operation", operation),
		zap.String("query", sql),
		zap.Duration("took", took),
	)
}

// pgErrorCode 取出 PostgreSQL 錯誤代碼
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
