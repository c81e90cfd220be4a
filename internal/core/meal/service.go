package meal

import (
	"context"
	"fmt"

	"meal-recommender/internal/pkg/common"
	"meal-recommender/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Recommendation 推薦結果
type Recommendation struct {
	Meals  []ScoredMeal
	Source string
}

// Service 餐點推薦服務
type Service struct {
	store       Store
	synthesizer Synthesizer
}

// NewService 創建推薦服務，synthesizer 可為 nil 表示不使用備援
func NewService(store Store, synthesizer Synthesizer) *Service {
	return &Service{
		store:       store,
		synthesizer: synthesizer,
	}
}

// Recommend 正規化偏好、查詢候選餐點並依健康目標排序
func (s *Service) Recommend(ctx context.Context, p Preferences) (*Recommendation, error) {
	p = p.WithDefaults()
	filter := NewFilter(p)

	candidates, err := s.store.FindMeals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate meals: %w", err)
	}

	source := metrics.SourceStore
	if len(candidates) == 0 {
		candidates = s.fallback(ctx, p, filter)
		source = metrics.SourceFallback
		if len(candidates) == 0 {
			source = metrics.SourceNone
		}
	}

	ranked := Rank(candidates, p.HealthGoal)

	metrics.RecommendationsTotal.WithLabelValues(source).Inc()
	metrics.RecommendationSize.Observe(float64(len(ranked)))
	common.LogDebug("推薦完成",
		zap.String("request_id", common.RequestIDFrom(ctx)),
		zap.String("source", source),
		zap.String("diet_type", p.DietType),
		zap.String("health_goal", p.HealthGoal),
		zap.Int("count", len(ranked)),
	)

	return &Recommendation{Meals: ranked, Source: source}, nil
}

// fallback 資料庫無候選時改用生成式服務，失敗時回傳空清單
func (s *Service) fallback(ctx context.Context, p Preferences, filter Filter) []Meal {
	if s.synthesizer == nil {
		metrics.FallbackRequestsTotal.WithLabelValues("disabled").Inc()
		return []Meal{}
	}

	meals, err := s.synthesizer.Synthesize(ctx, p)
	if err != nil {
		metrics.FallbackRequestsTotal.WithLabelValues("error").Inc()
		common.LogWarn("備援推薦失敗",
			zap.Error(err),
			zap.String("request_id", common.RequestIDFrom(ctx)),
		)
		return []Meal{}
	}

	// 生成結果同樣套用過敏原排除
	safe := make([]Meal, 0, len(meals))
	for _, m := range meals {
		if filter.AllergenFree(m) {
			safe = append(safe, m)
		}
	}

	result := "success"
	if len(safe) == 0 {
		result = "empty"
	}
	metrics.FallbackRequestsTotal.WithLabelValues(result).Inc()
	return safe
}
