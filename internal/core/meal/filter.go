package meal

import (
	"slices"
	"sort"
)

// MaxCandidates 單次查詢最多回傳的候選餐點數
const MaxCandidates = 10

// Filter 候選餐點篩選條件，所有條件以 AND 組合
type Filter struct {
	DietType    string
	Preferences []string
	Allergies   []string
}

// NewFilter 由偏好建立篩選條件
func NewFilter(p Preferences) Filter {
	p = p.WithDefaults()
	return Filter{
		DietType:    p.DietType,
		Preferences: Normalize(p.Preferences),
		Allergies:   Normalize(p.Allergies),
	}
}

// FiltersDiet 是否需要比對飲食類型
func (f Filter) FiltersDiet() bool {
	return f.DietType != "" && f.DietType != DefaultDietType
}

// Matches 判斷餐點是否符合所有條件
func (f Filter) Matches(m Meal) bool {
	if f.FiltersDiet() && m.DietType != f.DietType {
		return false
	}
	if len(f.Preferences) > 0 && !slices.Contains(f.Preferences, m.CuisineType) {
		return false
	}
	return f.AllergenFree(m)
}

// AllergenFree 任一過敏原與食材完全相同即排除（區分大小寫，非子字串比對）
func (f Filter) AllergenFree(m Meal) bool {
	for _, allergy := range f.Allergies {
		if slices.Contains(m.Ingredients, allergy) {
			return false
		}
	}
	return true
}

// SelectCandidates 在記憶體中套用篩選，依評分由高到低取前 MaxCandidates 筆
// 沒有評分的餐點排在最後，同分時依 id 由小到大
func SelectCandidates(meals []Meal, f Filter) []Meal {
	out := make([]Meal, 0, len(meals))
	for _, m := range meals {
		if f.Matches(m) {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rating, out[j].Rating
		switch {
		case ri == nil && rj == nil:
			return out[i].ID < out[j].ID
		case ri == nil:
			return false
		case rj == nil:
			return true
		case *ri != *rj:
			return *ri > *rj
		default:
			return out[i].ID < out[j].ID
		}
	})

	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}
