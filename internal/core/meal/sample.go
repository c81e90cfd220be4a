package meal

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

// SampleMeals 初始化資料庫或重設目錄時寫入的範例餐點
func SampleMeals() []Meal {
	return []Meal{
		{
			Name:           "Mediterranean Quinoa Bowl",
			Description:    "A nutritious bowl with quinoa, chickpeas, fresh vegetables, and feta cheese.",
			ImageURL:       stringPtr("https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=400&h=300&q=80"),
			Calories:       intPtr(420),
			PrepTime:       intPtr(25),
			Rating:         floatPtr(4.7),
			DietType:       "vegetarian",
			CuisineType:    "mediterranean",
			Ingredients:    []string{"quinoa", "chickpeas", "cucumber", "tomato", "feta cheese", "olive oil"},
			HealthBenefits: []string{"high fiber", "protein rich", "heart healthy"},
		},
		{
			Name:           "Vegetable Stir Fry",
			Description:    "Colorful vegetables stir-fried in a light soy sauce with tofu and sesame seeds.",
			ImageURL:       stringPtr("https://images.unsplash.com/photo-1563245372-f21724e3856d?auto=format&fit=crop&w=400&h=300&q=80"),
			Calories:       intPtr(380),
			PrepTime:       intPtr(20),
			Rating:         floatPtr(4.5),
			DietType:       "vegan",
			CuisineType:    "asian",
			Ingredients:    []string{"tofu", "broccoli", "bell peppers", "carrots", "soy sauce", "sesame oil"},
			HealthBenefits: []string{"low calorie", "vitamin rich", "plant-based protein"},
		},
		{
			Name:           "Avocado Toast with Poached Eggs",
			Description:    "Whole grain toast topped with mashed avocado, poached eggs, and microgreens.",
			ImageURL:       stringPtr("https://images.unsplash.com/photo-1551892374-ecf8754cf8b0?auto=format&fit=crop&w=400&h=300&q=80"),
			Calories:       intPtr(350),
			PrepTime:       intPtr(15),
			Rating:         floatPtr(4.8),
			DietType:       "vegetarian",
			CuisineType:    "american",
			Ingredients:    []string{"whole grain bread", "avocado", "eggs", "microgreens", "lemon juice"},
			HealthBenefits: []string{"healthy fats", "protein rich", "fiber"},
		},
		{
			Name:           "Grilled Chicken Salad",
			Description:    "Fresh greens with grilled chicken, vegetables, and a light vinaigrette.",
			ImageURL:       stringPtr("https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=400&h=300&q=80"),
			Calories:       intPtr(320),
			PrepTime:       intPtr(15),
			Rating:         floatPtr(4.6),
			DietType:       "any",
			CuisineType:    "american",
			Ingredients:    []string{"chicken breast", "lettuce", "tomato", "cucumber", "olive oil", "vinegar"},
			HealthBenefits: []string{"high protein", "low carb", "vitamin rich"},
		},
		{
			Name:           "Bean and Cheese Burrito",
			Description:    "Whole wheat tortilla filled with beans, cheese, and vegetables.",
			ImageURL:       stringPtr("https://images.unsplash.com/photo-1551782450-a2132b4ba21d?auto=format&fit=crop&w=400&h=300&q=80"),
			Calories:       intPtr(450),
			PrepTime:       intPtr(10),
			Rating:         floatPtr(4.3),
			DietType:       "vegetarian",
			CuisineType:    "mexican",
			Ingredients:    []string{"whole wheat tortilla", "black beans", "cheese", "tomato", "lettuce", "salsa"},
			HealthBenefits: []string{"high fiber", "protein rich", "satisfying"},
		},
	}
}
