package meal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"comma separated", "a, b, c", []string{"a", "b", "c"}},
		{"json array string", `["x","y"]`, []string{"x", "y"}},
		{"json array with padding", `  ["x", "y"]  `, []string{"x", "y"}},
		{"empty string", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"native slice", []string{"x"}, []string{"x"}},
		{"nil", nil, []string{}},
		{"single token trimmed", "  peanuts ", []string{"peanuts"}},
		{"drops empty segments", "a,, b ,", []string{"a", "b"}},
		{"unterminated bracket splits on commas", "[a, b", []string{"[a", "b"}},
		{"bracketed but invalid json", "[a, b]", []string{"[a, b]"}},
		{"decoded json slice", []any{"milk", "soy"}, []string{"milk", "soy"}},
		{"unsupported type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []any{"a, b, c", `["x","y"]`, "", "single", []string{"p", "q"}, nil}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %v", in)
	}
}

func TestStringListUnmarshal(t *testing.T) {
	var body struct {
		Allergies   StringList `json:"allergies"`
		Preferences StringList `json:"preferences"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"allergies":"nuts, soy","preferences":["asian","mexican"]}`), &body))
	assert.Equal(t, StringList{"nuts", "soy"}, body.Allergies)
	assert.Equal(t, StringList{"asian", "mexican"}, body.Preferences)

	require.NoError(t, json.Unmarshal([]byte(`{"allergies":"[\"egg\"]"}`), &body))
	assert.Equal(t, StringList{"egg"}, body.Allergies)
}

func TestPreferencesWithDefaults(t *testing.T) {
	p := Preferences{}.WithDefaults()
	assert.Equal(t, "any", p.DietType)
	assert.Equal(t, "maintain", p.HealthGoal)
	assert.NotNil(t, p.Preferences)
	assert.NotNil(t, p.Allergies)

	p = Preferences{DietType: "vegan", HealthGoal: "muscle"}.WithDefaults()
	assert.Equal(t, "vegan", p.DietType)
	assert.Equal(t, "muscle", p.HealthGoal)
}
