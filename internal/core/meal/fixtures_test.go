package meal

import "context"

func testMeal(name, diet, cuisine string, calories int, rating float64, ingredients ...string) Meal {
	return Meal{
		Name:        name,
		DietType:    diet,
		CuisineType: cuisine,
		Calories:    intPtr(calories),
		Rating:      floatPtr(rating),
		Ingredients: ingredients,
	}
}

// fiveMealFixture 固定的五筆測試資料
func fiveMealFixture() []Meal {
	return []Meal{
		testMeal("Tofu Scramble", "vegan", "american", 350, 4.6, "tofu", "spinach", "soy", "turmeric"),
		testMeal("Lentil Curry", "vegan", "indian", 520, 4.4, "lentils", "beans", "tomato", "rice"),
		testMeal("Nut Salad", "vegan", "mediterranean", 300, 4.9, "kale", "nuts", "berries"),
		testMeal("Veggie Bowl", "vegan", "asian", 400, 4.2, "quinoa", "broccoli", "soy sauce"),
		testMeal("Chicken Wrap", "any", "mexican", 450, 4.8, "chicken", "tortilla"),
	}
}

type sliceStore struct {
	meals []Meal
	err   error
	calls int
}

func (s *sliceStore) FindMeals(_ context.Context, f Filter) ([]Meal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return SelectCandidates(s.meals, f), nil
}

type stubSynthesizer struct {
	meals []Meal
	err   error
	calls int
}

func (s *stubSynthesizer) Synthesize(_ context.Context, _ Preferences) ([]Meal, error) {
	s.calls++
	return s.meals, s.err
}

type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}
