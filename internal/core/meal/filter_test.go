package meal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(meals []Meal) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.Name
	}
	return out
}

func TestSelectCandidatesDietType(t *testing.T) {
	meals := []Meal{
		testMeal("v1", "vegan", "asian", 400, 4.1),
		testMeal("veg1", "vegetarian", "asian", 400, 4.9),
		testMeal("v2", "vegan", "asian", 400, 4.7),
		testMeal("veg2", "vegetarian", "asian", 400, 3.0),
		testMeal("v3", "vegan", "asian", 400, 2.5),
	}

	got := SelectCandidates(meals, Filter{DietType: "vegan"})
	assert.Equal(t, []string{"v2", "v1", "v3"}, names(got))
}

func TestSelectCandidatesAnyDietSkipsFilter(t *testing.T) {
	got := SelectCandidates(SampleMeals(), Filter{DietType: "any"})
	assert.Len(t, got, 5)
	assert.Equal(t, "Avocado Toast with Poached Eggs", got[0].Name)
}

func TestSelectCandidatesAllergyExclusion(t *testing.T) {
	meals := []Meal{
		testMeal("omelette", "vegetarian", "french", 300, 4.0, "egg", "butter"),
		testMeal("salad", "vegan", "french", 200, 3.5, "lettuce"),
	}

	got := SelectCandidates(meals, Filter{DietType: "any", Allergies: []string{"egg"}})
	assert.Equal(t, []string{"salad"}, names(got))

	got = SelectCandidates(meals, Filter{DietType: "any", Allergies: []string{"milk"}})
	assert.Equal(t, []string{"omelette", "salad"}, names(got))
}

func TestAllergyMatchingIsLiteral(t *testing.T) {
	m := testMeal("stir fry", "vegan", "asian", 380, 4.5, "tofu", "soy sauce")

	assert.True(t, Filter{Allergies: []string{"soy"}}.AllergenFree(m), "substring must not exclude")
	assert.True(t, Filter{Allergies: []string{"Tofu"}}.AllergenFree(m), "matching is case-sensitive")
	assert.False(t, Filter{Allergies: []string{"milk", "tofu"}}.AllergenFree(m), "any allergy excludes")
}

func TestSelectCandidatesPreferencesAreOR(t *testing.T) {
	got := SelectCandidates(SampleMeals(), Filter{
		DietType:    "any",
		Preferences: []string{"asian", "mexican"},
	})
	assert.Equal(t, []string{"Vegetable Stir Fry", "Bean and Cheese Burrito"}, names(got))
}

func TestSelectCandidatesCombinesWithAND(t *testing.T) {
	got := SelectCandidates(SampleMeals(), Filter{
		DietType:    "vegetarian",
		Preferences: []string{"american", "mexican"},
		Allergies:   []string{"eggs"},
	})
	assert.Equal(t, []string{"Bean and Cheese Burrito"}, names(got))
}

func TestSelectCandidatesLimit(t *testing.T) {
	var meals []Meal
	for i := 0; i < 25; i++ {
		meals = append(meals, testMeal(fmt.Sprintf("m%02d", i), "vegan", "asian", 400, float64(i%5)))
	}

	got := SelectCandidates(meals, Filter{DietType: "vegan"})
	assert.Len(t, got, MaxCandidates)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, *got[i-1].Rating, *got[i].Rating)
	}
}

func TestSelectCandidatesNilRatingLast(t *testing.T) {
	unrated := Meal{Name: "unrated", DietType: "vegan"}
	meals := []Meal{unrated, testMeal("rated", "vegan", "asian", 400, 1.0)}

	got := SelectCandidates(meals, Filter{DietType: "vegan"})
	assert.Equal(t, []string{"rated", "unrated"}, names(got))
}

func TestSelectCandidatesTiesBreakOnID(t *testing.T) {
	third := testMeal("third", "vegan", "asian", 400, 4.0)
	third.ID = 3
	first := testMeal("first", "vegan", "asian", 400, 4.0)
	first.ID = 1
	lateUnrated := Meal{ID: 9, Name: "late unrated", DietType: "vegan"}
	earlyUnrated := Meal{ID: 2, Name: "early unrated", DietType: "vegan"}

	got := SelectCandidates([]Meal{lateUnrated, third, earlyUnrated, first}, Filter{DietType: "vegan"})
	assert.Equal(t, []string{"first", "third", "early unrated", "late unrated"}, names(got))
}

func TestSelectCandidatesNoMatchIsEmpty(t *testing.T) {
	got := SelectCandidates(SampleMeals(), Filter{DietType: "keto"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewFilterNormalizes(t *testing.T) {
	f := NewFilter(Preferences{Allergies: StringList{"nuts", "soy"}})
	assert.Equal(t, "any", f.DietType)
	assert.False(t, f.FiltersDiet())
	assert.Equal(t, []string{"nuts", "soy"}, f.Allergies)
	assert.Equal(t, []string{}, f.Preferences)
}
