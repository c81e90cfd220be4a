package meal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// AISynthesizer 透過生成式服務產生備援餐點
type AISynthesizer struct {
	completer Completer
	mealCount int
}

// NewAISynthesizer 創建備援推薦產生器
func NewAISynthesizer(completer Completer, mealCount int) *AISynthesizer {
	if mealCount <= 0 {
		mealCount = 3
	}
	return &AISynthesizer{
		completer: completer,
		mealCount: mealCount,
	}
}

// Synthesize 依偏好請生成式服務產生餐點，回應無法解析時回傳空清單
func (s *AISynthesizer) Synthesize(ctx context.Context, p Preferences) ([]Meal, error) {
	prompt := BuildFallbackPrompt(p.WithDefaults(), s.mealCount)

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt)
	common.LogAICall(time.Since(start), err, common.RequestIDFrom(ctx))
	if err != nil {
		return nil, common.ErrAIServiceError.Wrap(err)
	}

	return ParseFallbackMeals(text), nil
}

// BuildFallbackPrompt 組裝備援推薦 prompt
func BuildFallbackPrompt(p Preferences, count int) string {
	dietType := p.DietType
	if dietType == DefaultDietType {
		dietType = "any dietary"
	}
	exampleDiet := p.DietType
	if exampleDiet == DefaultDietType {
		exampleDiet = "vegetarian"
	}
	preferences := "no specific"
	if len(p.Preferences) > 0 {
		preferences = strings.Join(p.Preferences, ", ")
	}
	allergies := "none"
	if len(p.Allergies) > 0 {
		allergies = strings.Join(p.Allergies, ", ")
	}

	var sb strings.Builder
	sb.WriteString("You are a nutritionist and chef that creates healthy, delicious meal recommendations.\n")
	sb.WriteString(fmt.Sprintf("Create %d meal recommendations for a person with the following preferences:\n", count))
	sb.WriteString(fmt.Sprintf("- Diet type: %s\n", dietType))
	sb.WriteString(fmt.Sprintf("- Cuisine preferences: %s\n", preferences))
	sb.WriteString(fmt.Sprintf("- Allergies/restrictions: %s\n", allergies))
	sb.WriteString(fmt.Sprintf("- Health goal: %s\n", p.HealthGoal))
	sb.WriteString("For each meal, provide a creative name, a short description (1-2 sentences), ")
	sb.WriteString("estimated calories (between 300-600), preparation time in minutes, ")
	sb.WriteString("4-6 main ingredients and 2-3 key health benefits.\n")
	sb.WriteString("Format the response as a JSON array where each element has this structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"name\": \"meal name\",\n")
	sb.WriteString("  \"description\": \"meal description\",\n")
	sb.WriteString("  \"calories\": 450,\n")
	sb.WriteString("  \"prep_time\": 25,\n")
	sb.WriteString("  \"ingredients\": [\"ingredient1\", \"ingredient2\", \"ingredient3\"],\n")
	sb.WriteString("  \"health_benefits\": [\"benefit1\", \"benefit2\"],\n")
	sb.WriteString(fmt.Sprintf("  \"diet_type\": \"%s\",\n", exampleDiet))
	sb.WriteString("  \"cuisine_type\": \"appropriate cuisine\",\n")
	sb.WriteString("  \"rating\": 4.5,\n")
	sb.WriteString("  \"image_url\": null\n")
	sb.WriteString("}\n")
	sb.WriteString("Make the meals diverse, creative, and suitable for the user's preferences.\n")
	return sb.String()
}

// ParseFallbackMeals 解析生成式服務的回應
// 接受 ```json 區塊、一般 ``` 區塊或純 JSON；單一物件視為只有一筆
// 逐筆解析，無法解析的餐點略過，不影響其他餐點
func ParseFallbackMeals(text string) []Meal {
	block := common.ExtractJSONBlock(text)

	for _, candidate := range []string{block, common.QuoteJSONKeys(block)} {
		elements, ok := splitJSONElements(candidate)
		if !ok {
			continue
		}

		meals := make([]Meal, 0, len(elements))
		for i, raw := range elements {
			m, err := decodeGeneratedMeal(raw)
			if err != nil {
				common.LogWarn("略過無法解析的備援餐點",
					zap.Int("index", i),
					zap.Error(err),
				)
				continue
			}
			meals = append(meals, m)
		}
		return meals
	}

	preview := block
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	common.LogWarn("備援推薦回應解析失敗",
		zap.Int("response_length", len(text)),
		zap.String("response_preview", preview),
	)
	return []Meal{}
}

// splitJSONElements 陣列拆成各元素，單一物件視為一個元素
func splitJSONElements(candidate string) ([]json.RawMessage, bool) {
	var raw json.RawMessage
	if err := common.ParseJSON(candidate, &raw); err != nil {
		return nil, false
	}

	switch trimmed := bytes.TrimSpace(raw); {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, false
		}
		return elements, true
	case len(trimmed) > 0 && trimmed[0] == '{':
		return []json.RawMessage{trimmed}, true
	default:
		return nil, false
	}
}

// generatedMeal 生成式回應的餐點，數值欄位可為小數或字串
type generatedMeal struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ImageURL       *string     `json:"image_url"`
	Calories       looseNumber `json:"calories"`
	PrepTime       looseNumber `json:"prep_time"`
	Rating         looseNumber `json:"rating"`
	DietType       string      `json:"diet_type"`
	CuisineType    string      `json:"cuisine_type"`
	Ingredients    StringList  `json:"ingredients"`
	HealthBenefits StringList  `json:"health_benefits"`
}

func decodeGeneratedMeal(raw json.RawMessage) (Meal, error) {
	var g generatedMeal
	if err := json.Unmarshal(raw, &g); err != nil {
		return Meal{}, err
	}

	return Meal{
		Name:           g.Name,
		Description:    g.Description,
		ImageURL:       g.ImageURL,
		Calories:       g.Calories.intPtr(),
		PrepTime:       g.PrepTime.intPtr(),
		Rating:         g.Rating.floatPtr(),
		DietType:       g.DietType,
		CuisineType:    g.CuisineType,
		Ingredients:    []string(g.Ingredients),
		HealthBenefits: []string(g.HealthBenefits),
	}, nil
}

// looseNumber 接受數字或數字字串，其他值視為未提供
type looseNumber struct {
	value float64
	valid bool
}

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case float64:
		n.value, n.valid = x, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			n.value, n.valid = f, true
		}
	}
	return nil
}

func (n looseNumber) intPtr() *int {
	if !n.valid {
		return nil
	}
	return intPtr(int(math.Round(n.value)))
}

func (n looseNumber) floatPtr() *float64 {
	if !n.valid {
		return nil
	}
	return floatPtr(n.value)
}
