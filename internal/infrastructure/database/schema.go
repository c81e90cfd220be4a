package database

import (
	"context"
	"fmt"

	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// schemaStatements 依外鍵順序建立資料表
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_login TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS meals (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		image_url VARCHAR(255),
		calories INTEGER,
		prep_time INTEGER,
		rating NUMERIC(3, 2),
		diet_type VARCHAR(50),
		cuisine_type VARCHAR(50),
		ingredients TEXT[],
		health_benefits TEXT[],
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		diet_type VARCHAR(50),
		preferences TEXT[],
		allergies TEXT[],
		health_goal VARCHAR(50),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS meal_feedback (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		meal_id INTEGER REFERENCES meals(id) ON DELETE CASCADE,
		liked BOOLEAN,
		feedback TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS meal_history (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		meal_id INTEGER REFERENCES meals(id) ON DELETE CASCADE,
		viewed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meals_diet_rating ON meals (diet_type, rating DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_meal_history_user ON meal_history (user_id, viewed_at DESC)`,
}

// InitializeSchema 建立缺少的資料表與索引
func (db *DB) InitializeSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// SeedMeals meals 資料表為空時寫入範例餐點
func (db *DB) SeedMeals(ctx context.Context, meals []meal.Meal) error {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM meals`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count meals: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, m := range meals {
		if _, err := tx.Exec(ctx, insertMealSQL, insertMealArgs(m)...); err != nil {
			return fmt.Errorf("failed to insert meal %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	common.LogInfo("已寫入範例餐點", zap.Int("count", len(meals)))
	return nil
}
