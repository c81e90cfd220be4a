package meal

import (
	"context"
	"encoding/json"
	"time"
)

// Meal 餐點資料
type Meal struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ImageURL       *string  `json:"image_url"`
	Calories       *int     `json:"calories"`
	PrepTime       *int     `json:"prep_time"`
	Rating         *float64 `json:"rating"`
	DietType       string   `json:"diet_type"`
	CuisineType    string   `json:"cuisine_type"`
	Ingredients    []string `json:"ingredients"`
	HealthBenefits []string `json:"health_benefits"`
}

// ScoredMeal 附帶推薦分數的餐點，不會寫回資料庫
type ScoredMeal struct {
	Meal
	RecommendationScore float64 `json:"recommendation_score"`
}

// HistoryEntry 使用者瀏覽紀錄
type HistoryEntry struct {
	Meal
	ViewedAt time.Time `json:"viewed_at"`
}

// Feedback 使用者對餐點的回饋
type Feedback struct {
	UserID   int64   `json:"user_id"`
	MealID   int64   `json:"meal_id"`
	Liked    bool    `json:"liked"`
	Feedback *string `json:"feedback,omitempty"`
}

const (
	// DefaultDietType 不限制飲食類型
	DefaultDietType = "any"
	// DefaultHealthGoal 預設健康目標
	DefaultHealthGoal = string(GoalMaintain)
)

// StringList 可由 JSON 字串或陣列解析的字串清單
type StringList []string

// UnmarshalJSON 接受字串（逗號分隔或 JSON 陣列字串）與陣列兩種格式
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Normalize(raw)
	return nil
}

// Preferences 使用者飲食偏好
type Preferences struct {
	DietType    string     `json:"diet_type"`
	Preferences StringList `json:"preferences"`
	Allergies   StringList `json:"allergies"`
	HealthGoal  string     `json:"health_goal"`
}

// WithDefaults 補上預設值
func (p Preferences) WithDefaults() Preferences {
	if p.DietType == "" {
		p.DietType = DefaultDietType
	}
	if p.HealthGoal == "" {
		p.HealthGoal = DefaultHealthGoal
	}
	if p.Preferences == nil {
		p.Preferences = StringList{}
	}
	if p.Allergies == nil {
		p.Allergies = StringList{}
	}
	return p
}

// Store 候選餐點查詢
type Store interface {
	FindMeals(ctx context.Context, f Filter) ([]Meal, error)
}

// Catalog 餐點目錄維護
type Catalog interface {
	GetMeal(ctx context.Context, id int64) (*Meal, error)
	ResetMeals(ctx context.Context, meals []Meal) error
}

// PreferenceStore 使用者偏好儲存，每位使用者一筆，後寫覆蓋前寫
type PreferenceStore interface {
	SavePreferences(ctx context.Context, userID int64, p Preferences) error
	GetPreferences(ctx context.Context, userID int64) (*Preferences, error)
}

// ActivityStore 回饋與瀏覽紀錄，只新增不修改
type ActivityStore interface {
	SaveFeedback(ctx context.Context, f Feedback) error
	AddHistory(ctx context.Context, userID, mealID int64) error
	GetHistory(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error)
}

// Completer 生成式文字服務
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Synthesizer 在資料庫沒有候選餐點時產生備援推薦
type Synthesizer interface {
	Synthesize(ctx context.Context, p Preferences) ([]Meal, error)
}
