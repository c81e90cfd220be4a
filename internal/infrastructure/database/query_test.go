package database

import (
	"strings"
	"testing"

	"meal-recommender/internal/core/meal"

	"github.com/stretchr/testify/assert"
)

func TestBuildFindMealsQueryNoFilters(t *testing.T) {
	sql, args := buildFindMealsQuery(meal.Filter{DietType: "any"})

	assert.Empty(t, args)
	assert.NotContains(t, sql, "diet_type =")
	assert.NotContains(t, sql, "cuisine_type IN")
	assert.NotContains(t, sql, "ANY(")
	assert.True(t, strings.HasSuffix(sql, " ORDER BY rating DESC NULLS LAST, id ASC LIMIT 10"))
}

func TestBuildFindMealsQueryAllFilters(t *testing.T) {
	sql, args := buildFindMealsQuery(meal.Filter{
		DietType:    "vegan",
		Preferences: []string{"asian", "mexican"},
		Allergies:   []string{"nuts", "soy"},
	})

	assert.Equal(t, []any{"vegan", "asian", "mexican", "nuts", "soy"}, args)
	assert.Contains(t, sql, " AND diet_type = $1")
	assert.Contains(t, sql, " AND cuisine_type IN ($2, $3)")
	assert.Contains(t, sql, " AND NOT ($4 = ANY(COALESCE(ingredients, '{}')))")
	assert.Contains(t, sql, " AND NOT ($5 = ANY(COALESCE(ingredients, '{}')))")
}

func TestBuildFindMealsQueryPlaceholdersWithoutDiet(t *testing.T) {
	sql, args := buildFindMealsQuery(meal.Filter{
		DietType:  "any",
		Allergies: []string{"egg"},
	})

	assert.Equal(t, []any{"egg"}, args)
	assert.Contains(t, sql, "NOT ($1 = ANY(")
}

func TestMealColumnsAlias(t *testing.T) {
	cols := mealColumns("m")
	assert.True(t, strings.HasPrefix(cols, "m.id, m.name, "))
	assert.Contains(t, cols, "m.rating::float8")
	assert.Contains(t, cols, "COALESCE(m.ingredients, '{}')")
}
