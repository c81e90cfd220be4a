package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "here you go\n```json\n[{\"name\":\"a\"}]\n```\nenjoy", `[{"name":"a"}]`},
		{"plain fence", "```\n{\"name\":\"b\"}\n```", `{"name":"b"}`},
		{"no fence", "  [1, 2]  ", "[1, 2]"},
		{"unterminated fence", "```json\n[3]", "[3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONBlock(tt.in))
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]any
	require.NoError(t, ParseJSON(`{"a":1}`, &v))
	assert.Error(t, ParseJSON(`{"a":1} {"b":2}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	var v map[string]any
	require.NoError(t, ParseJSON(QuoteJSONKeys(`{name: "x", calories: 300}`), &v))
	assert.Equal(t, "x", v["name"])
}
