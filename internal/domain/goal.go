package domain

import "time"

// Default daily targets served when a user never set goals.
const (
	DefaultDailyCalories = 2000
	DefaultProteinG      = 100
	DefaultCarbsG        = 250
	DefaultFatG          = 70
)

// Goals holds a user's daily nutrition targets. One document per user, upserted.
type Goals struct {
	UserID        string    `bson:"user_id" json:"-"`
	DailyCalories int       `bson:"daily_calories" json:"daily_calories"`
	ProteinG      int       `bson:"protein_g" json:"protein_g"`
	CarbsG        int       `bson:"carbs_g" json:"carbs_g"`
	FatG          int       `bson:"fat_g" json:"fat_g"`
	CreatedAt     time.Time `bson:"created_at" json:"-"`
	UpdatedAt     time.Time `bson:"updated_at" json:"-"`
}

// DefaultGoals returns the fallback targets.
func DefaultGoals() Goals {
	return Goals{
		DailyCalories: DefaultDailyCalories,
		ProteinG:      DefaultProteinG,
		CarbsG:        DefaultCarbsG,
		FatG:          DefaultFatG,
	}
}
