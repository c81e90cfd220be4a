package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"
)

type historyRow struct {
	id       int64
	userID   int64
	mealID   int64
	viewedAt time.Time
}

// MemoryStore 記憶體版儲存，database.enabled 為 false 時使用
type MemoryStore struct {
	mu sync.RWMutex

	meals      []meal.Meal
	nextMealID int64

	users      map[int64]*auth.User
	nextUserID int64

	preferences map[int64]meal.Preferences
	feedback    []meal.Feedback
	history     []historyRow
	nextHistory int64

	now func() time.Time
}

// NewMemoryStore 創建記憶體儲存並寫入初始餐點
func NewMemoryStore(seed []meal.Meal) *MemoryStore {
	s := &MemoryStore{
		users:       make(map[int64]*auth.User),
		preferences: make(map[int64]meal.Preferences),
		now:         time.Now,
	}
	s.insertMeals(seed)
	return s
}

// Ping 記憶體儲存永遠可用
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close 無需釋放資源
func (s *MemoryStore) Close() {}

func (s *MemoryStore) insertMeals(meals []meal.Meal) {
	for _, m := range meals {
		s.nextMealID++
		m.ID = s.nextMealID
		s.meals = append(s.meals, m)
	}
}

// FindMeals 在記憶體中套用篩選
func (s *MemoryStore) FindMeals(_ context.Context, f meal.Filter) ([]meal.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return meal.SelectCandidates(s.meals, f), nil
}

// GetMeal 依 ID 取得餐點
func (s *MemoryStore) GetMeal(_ context.Context, id int64) (*meal.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.findMeal(id); ok {
		return &m, nil
	}
	return nil, common.ErrMealNotFound
}

func (s *MemoryStore) findMeal(id int64) (meal.Meal, bool) {
	for _, m := range s.meals {
		if m.ID == id {
			return m, true
		}
	}
	return meal.Meal{}, false
}

// ResetMeals 刪除所有餐點並重新寫入，相關回饋與瀏覽紀錄一併刪除
func (s *MemoryStore) ResetMeals(_ context.Context, meals []meal.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = nil
	s.feedback = nil
	s.history = nil
	s.insertMeals(meals)
	return nil
}

// CreateUser 新增使用者
func (s *MemoryStore) CreateUser(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return common.ErrEmailTaken
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.now().UTC()
	stored := *u
	s.users[u.ID] = &stored
	return nil
}

// GetUserByEmail 依 email 取得使用者
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrUserNotFound
}

// GetUserByID 依 ID 取得使用者
func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// UpdateLastLogin 更新最後登入時間
func (s *MemoryStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

// SavePreferences 新增或覆寫使用者偏好
func (s *MemoryStore) SavePreferences(_ context.Context, userID int64, p meal.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences[userID] = p.WithDefaults()
	return nil
}

// GetPreferences 取得使用者偏好
func (s *MemoryStore) GetPreferences(_ context.Context, userID int64) (*meal.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[userID]
	if !ok {
		return nil, common.ErrPreferencesNotFound
	}
	return &p, nil
}

// SaveFeedback 新增回饋紀錄
func (s *MemoryStore) SaveFeedback(_ context.Context, f meal.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findMeal(f.MealID); !ok {
		return common.ErrMealNotFound
	}
	s.feedback = append(s.feedback, f)
	return nil
}

// AddHistory 新增瀏覽紀錄
func (s *MemoryStore) AddHistory(_ context.Context, userID, mealID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findMeal(mealID); !ok {
		return common.ErrMealNotFound
	}
	s.nextHistory++
	s.history = append(s.history, historyRow{
		id:       s.nextHistory,
		userID:   userID,
		mealID:   mealID,
		viewedAt: s.now().UTC(),
	})
	return nil
}

// GetHistory 取得使用者最近瀏覽的餐點，新的在前
func (s *MemoryStore) GetHistory(_ context.Context, userID int64, limit int) ([]meal.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]historyRow, 0)
	for _, h := range s.history {
		if h.userID == userID {
			rows = append(rows, h)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].viewedAt.Equal(rows[j].viewedAt) {
			return rows[i].viewedAt.After(rows[j].viewedAt)
		}
		return rows[i].id > rows[j].id
	})

	entries := make([]meal.HistoryEntry, 0, len(rows))
	for _, h := range rows {
		if limit > 0 && len(entries) >= limit {
			break
		}
		m, ok := s.findMeal(h.mealID)
		if !ok {
			continue
		}
		entries = append(entries, meal.HistoryEntry{Meal: m, ViewedAt: h.viewedAt})
	}
	return entries, nil
}

// Feedback 取得所有回饋紀錄的副本
func (s *MemoryStore) Feedback() []meal.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]meal.Feedback, len(s.feedback))
	copy(out, s.feedback)
	return out
}
