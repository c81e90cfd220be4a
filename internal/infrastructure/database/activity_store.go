package database

import (
	"context"
	"errors"
	"fmt"

	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"github.com/jackc/pgx/v5"
)

// SavePreferences 新增或覆寫使用者偏好
func (db *DB) SavePreferences(ctx context.Context, userID int64, p meal.Preferences) error {
	p = p.WithDefaults()
	_, err := db.exec(ctx, `
		INSERT INTO user_preferences (user_id, diet_type, preferences, allergies, health_goal)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			diet_type = EXCLUDED.diet_type,
			preferences = EXCLUDED.preferences,
			allergies = EXCLUDED.allergies,
			health_goal = EXCLUDED.health_goal,
			updated_at = CURRENT_TIMESTAMP`,
		userID, p.DietType, []string(p.Preferences), []string(p.Allergies), p.HealthGoal,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// GetPreferences 取得使用者偏好
func (db *DB) GetPreferences(ctx context.Context, userID int64) (*meal.Preferences, error) {
	var p meal.Preferences
	var preferences, allergies []string
	err := db.pool.QueryRow(ctx, `
		SELECT COALESCE(diet_type, ''), COALESCE(preferences, '{}'), COALESCE(allergies, '{}'), COALESCE(health_goal, '')
		FROM user_preferences WHERE user_id = $1`, userID,
	).Scan(&p.DietType, &preferences, &allergies, &p.HealthGoal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	p.Preferences = meal.StringList(preferences)
	p.Allergies = meal.StringList(allergies)
	p = p.WithDefaults()
	return &p, nil
}

// SaveFeedback 新增回饋紀錄
func (db *DB) SaveFeedback(ctx context.Context, f meal.Feedback) error {
	_, err := db.exec(ctx,
		`INSERT INTO meal_feedback (user_id, meal_id, liked, feedback) VALUES ($1, $2, $3, $4)`,
		f.UserID, f.MealID, f.Liked, f.Feedback,
	)
	if pgErrorCode(err) == pgForeignKeyViolation {
		return common.ErrMealNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// AddHistory 新增瀏覽紀錄
func (db *DB) AddHistory(ctx context.Context, userID, mealID int64) error {
	_, err := db.exec(ctx, `INSERT INTO meal_history (user_id, meal_id) VALUES ($1, $2)`, userID, mealID)
	if pgErrorCode(err) == pgForeignKeyViolation {
		return common.ErrMealNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}
	return nil
}

// GetHistory 取得使用者最近瀏覽的餐點，新的在前
func (db *DB) GetHistory(ctx context.Context, userID int64, limit int) ([]meal.HistoryEntry, error) {
	rows, err := db.query(ctx, `
		SELECT `+mealColumns("m")+`, h.viewed_at
		FROM meal_history h
		JOIN meals m ON h.meal_id = m.id
		WHERE h.user_id = $1
		ORDER BY h.viewed_at DESC, h.id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]meal.HistoryEntry, 0, limit)
	for rows.Next() {
		var e meal.HistoryEntry
		targets := append(mealScanTargets(&e.Meal), &e.ViewedAt)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}
