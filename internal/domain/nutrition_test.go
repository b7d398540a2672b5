package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNutrition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  map[string]any
		want Nutrition
	}{
		{
			name: "empty source yields zero record",
			src:  map[string]any{},
			want: Nutrition{},
		},
		{
			name: "nil source yields zero record",
			src:  nil,
			want: Nutrition{},
		},
		{
			name: "single key, rest default to zero",
			src:  map[string]any{"protein_g": 12.5},
			want: Nutrition{Protein: 12.5},
		},
		{
			name: "full suffixed mapping",
			src: map[string]any{
				"calories":  520.0,
				"protein_g": 31.0,
				"carbs_g":   44.5,
				"fat_g":     22.0,
				"fiber_g":   6.0,
				"sugar_g":   9.5,
				"sodium_mg": 780.0,
			},
			want: Nutrition{Calories: 520, Protein: 31, Carbs: 44.5, Fat: 22, Fiber: 6, Sugar: 9.5, Sodium: 780},
		},
		{
			name: "unknown keys are ignored",
			src:  map[string]any{"kilojoules": 2100.0, "protein_g": 10.0},
			want: Nutrition{Protein: 10},
		},
		{
			name: "integer values are accepted",
			src:  map[string]any{"calories": 300, "sodium_mg": int64(120)},
			want: Nutrition{Calories: 300, Sodium: 120},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNutrition(tt.src))
		})
	}
}

func TestNormalizeNutrition_Idempotent(t *testing.T) {
	t.Parallel()

	first := NormalizeNutrition(map[string]any{
		"calories":  410.0,
		"protein_g": 18.0,
		"carbs_g":   52.0,
		"fat_g":     14.0,
	})

	// Re-normalizing an already-normalized record is a no-op.
	again := NormalizeNutrition(map[string]any{
		"calories": first.Calories,
		"protein":  first.Protein,
		"carbs":    first.Carbs,
		"fat":      first.Fat,
		"fiber":    first.Fiber,
		"sugar":    first.Sugar,
		"sodium":   first.Sodium,
	})
	assert.Equal(t, first, again)
}
