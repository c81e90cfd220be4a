package meal

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// HealthGoal 使用者健康目標
type HealthGoal string

const (
	GoalLose     HealthGoal = "lose"
	GoalGain     HealthGoal = "gain"
	GoalMaintain HealthGoal = "maintain"
	GoalEnergy   HealthGoal = "energy"
	GoalMuscle   HealthGoal = "muscle"
)

// ParseHealthGoal 無法辨識的目標一律視為 maintain
func ParseHealthGoal(s string) HealthGoal {
	switch g := HealthGoal(s); g {
	case GoalLose, GoalGain, GoalMaintain, GoalEnergy, GoalMuscle:
		return g
	default:
		return GoalMaintain
	}
}

// Weights 各評分因子的權重，0 表示該目標不採用此因子
type Weights struct {
	Calories  float64
	Rating    float64
	Protein   float64
	Nutrients float64
	Balance   float64
	// Carbs 僅宣告於 energy 目標，沒有對應的估算因子，實際貢獻為 0
	Carbs float64
}

var goalWeights = map[HealthGoal]Weights{
	GoalLose:     {Calories: -0.6, Rating: 0.4},
	GoalGain:     {Calories: 0.3, Rating: 0.4, Protein: 0.3},
	GoalMaintain: {Calories: -0.2, Rating: 0.5, Balance: 0.3},
	GoalEnergy:   {Rating: 0.4, Carbs: 0.3, Nutrients: 0.3},
	GoalMuscle:   {Protein: 0.5, Calories: 0.3, Rating: 0.2},
}

// WeightsFor 取得目標對應的權重表
func WeightsFor(goal HealthGoal) Weights {
	return goalWeights[ParseHealthGoal(string(goal))]
}

const (
	defaultCalories = 500
	defaultRating   = 3.0
	// 食材清單為空時蛋白質、營養密度、均衡度的預設分數
	defaultIngredientScore = 0.5
)

var (
	proteinKeywords  = []string{"chicken", "beef", "fish", "tofu", "beans", "lentils", "eggs", "cheese", "yogurt", "meat", "poultry"}
	nutrientKeywords = []string{"vegetable", "fruit", "leafy", "berry", "nut", "seed", "whole grain", "green", "spinach", "kale", "broccoli"}
)

// Rank 依健康目標為餐點評分並由高到低穩定排序，不修改輸入
func Rank(meals []Meal, healthGoal string) []ScoredMeal {
	weights := WeightsFor(HealthGoal(healthGoal))

	scored := make([]ScoredMeal, len(meals))
	for i, m := range meals {
		scored[i] = ScoredMeal{
			Meal:                m,
			RecommendationScore: Score(m, weights),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})
	return scored
}

// Score 計算單一餐點的推薦分數，四捨五入到小數點後兩位
func Score(m Meal, w Weights) float64 {
	var score float64
	if w.Calories != 0 {
		score += w.Calories * CaloriesFactor(m)
	}
	if w.Rating != 0 {
		score += w.Rating * RatingFactor(m)
	}
	if w.Protein != 0 {
		score += w.Protein * ProteinFactor(m.Ingredients)
	}
	if w.Nutrients != 0 {
		score += w.Nutrients * NutrientFactor(m.Ingredients)
	}
	if w.Balance != 0 {
		score += w.Balance * BalanceFactor(m.Ingredients)
	}
	return round2(score)
}

// CaloriesFactor 以 200-800 大卡區間正規化
func CaloriesFactor(m Meal) float64 {
	calories := defaultCalories
	if m.Calories != nil && *m.Calories != 0 {
		calories = *m.Calories
	}
	return clamp01(float64(calories-200) / 600)
}

// RatingFactor 以 0-5 分正規化
func RatingFactor(m Meal) float64 {
	rating := defaultRating
	if m.Rating != nil && *m.Rating != 0 {
		rating = *m.Rating
	}
	return clamp01(rating / 5)
}

// ProteinFactor 以食材名稱估計蛋白質含量，不分大小寫子字串比對
func ProteinFactor(ingredients []string) float64 {
	if len(ingredients) == 0 {
		return defaultIngredientScore
	}
	return math.Min(1.0, float64(countMatching(ingredients, proteinKeywords))/3)
}

// NutrientFactor 以食材名稱估計營養密度
func NutrientFactor(ingredients []string) float64 {
	if len(ingredients) == 0 {
		return defaultIngredientScore
	}
	return math.Min(1.0, float64(countMatching(ingredients, nutrientKeywords))/5)
}

// BalanceFactor 食材種類越多越均衡，10 種以上為滿分
func BalanceFactor(ingredients []string) float64 {
	if len(ingredients) == 0 {
		return defaultIngredientScore
	}
	return math.Min(1.0, float64(len(ingredients))/10)
}

func countMatching(ingredients, keywords []string) int {
	count := 0
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				count++
				break
			}
		}
	}
	return count
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// round2 依 float64 的實際十進位值四捨五入，不先乘以 100 以免放大誤差
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		// 避免輸出 -0
		return 0
	}
	return r
}
