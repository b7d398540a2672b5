package dto

import "github.com/spec-kit/nutrition-service/internal/domain"

// AnalyzeResponse is returned by POST /analyze.
type AnalyzeResponse struct {
	Analysis domain.MealAnalysis `json:"analysis"`
	ImageURL string              `json:"image_url"`
}

// HistoryResponse lists a user's recent meals.
type HistoryResponse struct {
	Count int        `json:"count"`
	Meals []MealView `json:"meals"`
}

// MealView is the client-facing meal shape.
type MealView struct {
	ID        string              `json:"id"`
	ImageURL  string              `json:"image_url"`
	Analysis  domain.MealAnalysis `json:"analysis"`
	Timestamp string              `json:"timestamp"`
}

// SummaryResponse reports one day's totals against goals.
type SummaryResponse struct {
	Date       string             `json:"date"`
	Totals     map[string]float64 `json:"totals"`
	Goals      domain.Goals       `json:"goals"`
	Progress   map[string]float64 `json:"progress"`
	MealsCount int                `json:"meals_count"`
}

// GoalsRequest payload for POST /goals.
type GoalsRequest struct {
	DailyCalories int `json:"daily_calories"`
	ProteinG      int `json:"protein_g"`
	CarbsG        int `json:"carbs_g"`
	FatG          int `json:"fat_g"`
}
