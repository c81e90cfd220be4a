package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const insertMealSQL = `INSERT INTO meals
	(name, description, image_url, calories, prep_time, rating, diet_type, cuisine_type, ingredients, health_benefits)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func insertMealArgs(m meal.Meal) []any {
	return []any{
		m.Name, m.Description, m.ImageURL, m.Calories, m.PrepTime, m.Rating,
		m.DietType, m.CuisineType, nonNil(m.Ingredients), nonNil(m.HealthBenefits),
	}
}

// mealColumns 餐點欄位，alias 為資料表別名（可為空）
func mealColumns(alias string) string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	cols := []string{
		p + "id",
		p + "name",
		"COALESCE(" + p + "description, '')",
		p + "image_url",
		p + "calories",
		p + "prep_time",
		p + "rating::float8",
		"COALESCE(" + p + "diet_type, '')",
		"COALESCE(" + p + "cuisine_type, '')",
		"COALESCE(" + p + "ingredients, '{}')",
		"COALESCE(" + p + "health_benefits, '{}')",
	}
	return strings.Join(cols, ", ")
}

func mealScanTargets(m *meal.Meal) []any {
	return []any{
		&m.ID, &m.Name, &m.Description, &m.ImageURL, &m.Calories, &m.PrepTime, &m.Rating,
		&m.DietType, &m.CuisineType, &m.Ingredients, &m.HealthBenefits,
	}
}

// buildFindMealsQuery 組出候選餐點查詢
// 飲食類型完全相符、料理類型屬於偏好集合、每個過敏原都不在食材中，條件以 AND 組合
func buildFindMealsQuery(f meal.Filter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 1+len(f.Preferences)+len(f.Allergies))

	sb.WriteString("SELECT ")
	sb.WriteString(mealColumns(""))
	sb.WriteString(" FROM meals WHERE 1=1")

	if f.FiltersDiet() {
		args = append(args, f.DietType)
		fmt.Fprintf(&sb, " AND diet_type = $%d", len(args))
	}

	if len(f.Preferences) > 0 {
		placeholders := make([]string, len(f.Preferences))
		for i, p := range f.Preferences {
			args = append(args, p)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		fmt.Fprintf(&sb, " AND cuisine_type IN (%s)", strings.Join(placeholders, ", "))
	}

	for _, allergy := range f.Allergies {
		args = append(args, allergy)
		fmt.Fprintf(&sb, " AND NOT ($%d = ANY(COALESCE(ingredients, '{}')))", len(args))
	}

	fmt.Fprintf(&sb, " ORDER BY rating DESC NULLS LAST, id ASC LIMIT %d", meal.MaxCandidates)
	return sb.String(), args
}

// FindMeals 查詢符合條件的候選餐點
func (db *DB) FindMeals(ctx context.Context, f meal.Filter) ([]meal.Meal, error) {
	sql, args := buildFindMealsQuery(f)

	rows, err := db.query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	meals := make([]meal.Meal, 0, meal.MaxCandidates)
	for rows.Next() {
		var m meal.Meal
		if err := rows.Scan(mealScanTargets(&m)...); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meals: %w", err)
	}
	return meals, nil
}

// GetMeal 依 ID 取得餐點
func (db *DB) GetMeal(ctx context.Context, id int64) (*meal.Meal, error) {
	var m meal.Meal
	err := db.pool.QueryRow(ctx, "SELECT "+mealColumns("")+" FROM meals WHERE id = $1", id).
		Scan(mealScanTargets(&m)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &m, nil
}

// ResetMeals 刪除所有餐點並重新寫入，回饋與瀏覽紀錄隨外鍵一併刪除
func (db *DB) ResetMeals(ctx context.Context, meals []meal.Meal) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM meals`); err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}

	batch := &pgx.Batch{}
	for _, m := range meals {
		batch.Queue(insertMealSQL, insertMealArgs(m)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert meals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit meal reset: %w", err)
	}

	common.LogInfo("餐點目錄已重設", zap.Int("count", len(meals)))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
