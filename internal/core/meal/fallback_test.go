package meal

import (
	"context"
	"errors"
	"testing"

	"meal-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFallbackPromptDefaults(t *testing.T) {
	prompt := BuildFallbackPrompt(Preferences{}.WithDefaults(), 3)

	assert.Contains(t, prompt, "Create 3 meal recommendations")
	assert.Contains(t, prompt, "- Diet type: any dietary")
	assert.Contains(t, prompt, "- Cuisine preferences: no specific")
	assert.Contains(t, prompt, "- Allergies/restrictions: none")
	assert.Contains(t, prompt, "- Health goal: maintain")
	assert.Contains(t, prompt, `"diet_type": "vegetarian"`)
}

func TestBuildFallbackPromptWithPreferences(t *testing.T) {
	prompt := BuildFallbackPrompt(Preferences{
		DietType:    "vegan",
		Preferences: StringList{"asian", "mexican"},
		Allergies:   StringList{"nuts", "soy"},
		HealthGoal:  "muscle",
	}, 2)

	assert.Contains(t, prompt, "Create 2 meal recommendations")
	assert.Contains(t, prompt, "- Diet type: vegan")
	assert.Contains(t, prompt, "- Cuisine preferences: asian, mexican")
	assert.Contains(t, prompt, "- Allergies/restrictions: nuts, soy")
	assert.Contains(t, prompt, `"diet_type": "vegan"`)
}

func TestParseFallbackMeals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "json fence",
			text: "Here you go:\n```json\n[{\"name\":\"Tofu Bowl\",\"calories\":420}]\n```\nEnjoy!",
			want: []string{"Tofu Bowl"},
		},
		{
			name: "plain fence",
			text: "```\n[{\"name\":\"A\"},{\"name\":\"B\"}]\n```",
			want: []string{"A", "B"},
		},
		{
			name: "bare array",
			text: `[{"name":"Lentil Soup","ingredients":["lentils","carrots"]}]`,
			want: []string{"Lentil Soup"},
		},
		{
			name: "single object",
			text: `{"name":"Solo"}`,
			want: []string{"Solo"},
		},
		{
			name: "unquoted keys",
			text: `[{name: "Loose"}]`,
			want: []string{"Loose"},
		},
		{
			name: "garbage",
			text: "I cannot help with that.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFallbackMeals(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestParseFallbackMealsFields(t *testing.T) {
	got := ParseFallbackMeals(`[{"name":"Bowl","calories":450,"prep_time":20,"rating":4.5,` +
		`"ingredients":["tofu","rice"],"health_benefits":["protein"],"diet_type":"vegan","cuisine_type":"asian","image_url":null}]`)
	require.Len(t, got, 1)

	m := got[0]
	assert.Zero(t, m.ID)
	assert.Equal(t, 450, *m.Calories)
	assert.Equal(t, 20, *m.PrepTime)
	assert.Equal(t, 4.5, *m.Rating)
	assert.Nil(t, m.ImageURL)
	assert.Equal(t, []string{"tofu", "rice"}, m.Ingredients)
}

func TestParseFallbackMealsLenientNumbers(t *testing.T) {
	text := "```json\n[" +
		`{"name":"Half","calories":450.5,"prep_time":"25","rating":"4.5"},` +
		`{"name":"Whole","calories":400,"rating":"excellent"}` +
		"]\n```"

	got := ParseFallbackMeals(text)
	require.Len(t, got, 2)

	assert.Equal(t, 451, *got[0].Calories)
	assert.Equal(t, 25, *got[0].PrepTime)
	assert.Equal(t, 4.5, *got[0].Rating)

	assert.Equal(t, 400, *got[1].Calories)
	assert.Nil(t, got[1].Rating)
	assert.Nil(t, got[1].PrepTime)
}

func TestParseFallbackMealsSkipsBrokenElements(t *testing.T) {
	got := ParseFallbackMeals(`[{"name":42,"calories":300},"not a meal",{"name":"Kept","calories":380}]`)
	assert.Equal(t, []string{"Kept"}, names(got))
}

func TestAISynthesizer(t *testing.T) {
	completer := &stubCompleter{response: "```json\n[{\"name\":\"Chickpea Stew\"}]\n```"}
	s := NewAISynthesizer(completer, 0)

	got, err := s.Synthesize(context.Background(), Preferences{DietType: "vegan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chickpea Stew"}, names(got))
	assert.Contains(t, completer.prompt, "Create 3 meal recommendations")
	assert.Contains(t, completer.prompt, "- Health goal: maintain")
}

func TestAISynthesizerError(t *testing.T) {
	s := NewAISynthesizer(&stubCompleter{err: errors.New("upstream down")}, 3)

	got, err := s.Synthesize(context.Background(), Preferences{})
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAIServiceError)
}
