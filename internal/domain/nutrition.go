package domain

// Nutrition is the fixed-shape record every analysis result is forced into.
// All seven fields are always populated; missing source values become zero.
type Nutrition struct {
	Calories float64 `json:"calories" bson:"calories"`
	Protein  float64 `json:"protein" bson:"protein"`
	Carbs    float64 `json:"carbs" bson:"carbs"`
	Fat      float64 `json:"fat" bson:"fat"`
	Fiber    float64 `json:"fiber" bson:"fiber"`
	Sugar    float64 `json:"sugar" bson:"sugar"`
	Sodium   float64 `json:"sodium" bson:"sodium"`
}

// NormalizeNutrition maps an arbitrarily-shaped source mapping onto Nutrition.
// The model reports gram/milligram-suffixed keys; an already-normalized record
// carries the bare names, so each field falls back to its own name. That makes
// normalization idempotent. A nil source yields the zero record. Totals are
// trusted as supplied, never recomputed from items.
func NormalizeNutrition(src map[string]any) Nutrition {
	return Nutrition{
		Calories: numberAt(src, "calories"),
		Protein:  numberAt(src, "protein_g", "protein"),
		Carbs:    numberAt(src, "carbs_g", "carbs"),
		Fat:      numberAt(src, "fat_g", "fat"),
		Fiber:    numberAt(src, "fiber_g", "fiber"),
		Sugar:    numberAt(src, "sugar_g", "sugar"),
		Sodium:   numberAt(src, "sodium_mg", "sodium"),
	}
}

func numberAt(src map[string]any, keys ...string) float64 {
	for _, key := range keys {
		val, ok := src[key]
		if !ok {
			continue
		}
		switch n := val.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case int32:
			return float64(n)
		}
	}
	return 0
}
