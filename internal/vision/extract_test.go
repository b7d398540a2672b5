package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "bare json",
			raw:  `{"a":1}`,
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"a\":1}\n```",
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"a\":1}\n```",
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "surrounding prose",
			raw:  `Sure! Here is the result: {"a": {"b": 2}} Hope that helps`,
			want: map[string]any{"a": map[string]any{"b": float64(2)}},
		},
		{
			name: "leading and trailing whitespace",
			raw:  "\n\n  {\"a\":1}  \n",
			want: map[string]any{"a": float64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractObject_NoJSONFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "no braces", raw: "no braces here"},
		{name: "empty", raw: ""},
		{name: "only open brace", raw: "unbalanced {"},
		{name: "close brace before open", raw: "} {"},
		{name: "fence with no object", raw: "```\nplain text\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractObject(tt.raw)
			assert.ErrorIs(t, err, ErrNoJSONFound)
		})
	}
}

func TestExtractObject_MalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := ExtractObject(`prefix {"a": } suffix`)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}
