package domain

import "time"

// FoodItem is one recognized item on the plate.
type FoodItem struct {
	Name                string    `json:"name" bson:"name"`
	Confidence          float64   `json:"confidence" bson:"confidence"`
	EstimatedWeightG    float64   `json:"estimated_weight_g" bson:"estimated_weight_g"`
	NutritionPerPortion Nutrition `json:"nutrition_per_portion" bson:"nutrition_per_portion"`
}

// MealAnalysis is the normalized result of one vision model call.
type MealAnalysis struct {
	Items          []FoodItem `json:"items" bson:"items"`
	TotalNutrition Nutrition  `json:"total_nutrition" bson:"total_nutrition"`
}

// Meal is a persisted analysis tied to the user who uploaded the photo.
type Meal struct {
	ID        string       `bson:"_id"`
	UserID    string       `bson:"user_id"`
	Email     string       `bson:"email"`
	ImageURL  string       `bson:"image_url"`
	Analysis  MealAnalysis `bson:"analysis"`
	Timestamp time.Time    `bson:"timestamp"`
}
