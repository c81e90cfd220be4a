package database

import (
	"context"

	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/core/meal"
)

// Repository 服務所需的全部儲存操作
type Repository interface {
	meal.Store
	meal.Catalog
	meal.PreferenceStore
	meal.ActivityStore
	auth.UserStore

	Ping(ctx context.Context) error
	Close()
}

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*MemoryStore)(nil)
)
