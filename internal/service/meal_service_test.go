package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/events"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

func sampleAnalysis() *domain.MealAnalysis {
	return &domain.MealAnalysis{
		Items: []domain.FoodItem{
			{
				Name:                "dal",
				Confidence:          0.9,
				EstimatedWeightG:    180,
				NutritionPerPortion: domain.Nutrition{Calories: 210, Protein: 12},
			},
		},
		TotalNutrition: domain.Nutrition{Calories: 210, Protein: 12, Carbs: 30, Fat: 5},
	}
}

func TestMealService_Analyze(t *testing.T) {
	t.Parallel()

	meals := &stubMealRepo{}
	uploader := &stubUploader{url: "https://img.example.com/meal.jpg"}
	dispatcher := &recordingDispatcher{}
	svc := NewMealService(MealDependencies{
		MealRepo:   meals,
		GoalRepo:   newStubGoalRepo(),
		Analyzer:   &stubAnalyzer{analysis: sampleAnalysis()},
		Uploader:   uploader,
		Dispatcher: dispatcher,
		Folder:     "nutrisnap_meals",
	})

	user := &domain.User{ID: "u1", Email: "user@example.com"}
	result, err := svc.Analyze(context.Background(), user, []byte("jpeg-bytes"), "indian")
	require.NoError(t, err)

	assert.Equal(t, "https://img.example.com/meal.jpg", result.ImageURL)
	assert.Len(t, result.Analysis.Items, 1)

	require.Len(t, meals.meals, 1)
	assert.Equal(t, "u1", meals.meals[0].UserID)
	assert.Equal(t, "user@example.com", meals.meals[0].Email)
	assert.Equal(t, result.ImageURL, meals.meals[0].ImageURL)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventMealAnalyzed, dispatcher.published[0].Type)
}

func TestMealService_AnalyzeVisionFailureSkipsUpload(t *testing.T) {
	t.Parallel()

	meals := &stubMealRepo{}
	uploader := &stubUploader{url: "https://img.example.com/meal.jpg"}
	svc := NewMealService(MealDependencies{
		MealRepo: meals,
		GoalRepo: newStubGoalRepo(),
		Analyzer: &stubAnalyzer{err: apperrors.NewUpstreamFailure("vision model", assert.AnError)},
		Uploader: uploader,
	})

	user := &domain.User{ID: "u1", Email: "user@example.com"}
	_, err := svc.Analyze(context.Background(), user, []byte("jpeg-bytes"), "")
	require.Error(t, err)

	assert.Zero(t, uploader.uploaded)
	assert.Empty(t, meals.meals)
}

func TestMealService_HistoryDefaultLimit(t *testing.T) {
	t.Parallel()

	meals := &stubMealRepo{}
	for i := 0; i < 8; i++ {
		require.NoError(t, meals.Create(context.Background(), &domain.Meal{UserID: "u1"}))
	}
	svc := NewMealService(MealDependencies{MealRepo: meals, GoalRepo: newStubGoalRepo()})

	history, err := svc.History(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestMealService_Summary(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	meals := &stubMealRepo{meals: []domain.Meal{
		{
			UserID:    "u1",
			Timestamp: day.Add(8 * time.Hour),
			Analysis:  domain.MealAnalysis{TotalNutrition: domain.Nutrition{Calories: 400, Protein: 20, Carbs: 50, Fat: 10}},
		},
		{
			UserID:    "u1",
			Timestamp: day.Add(13 * time.Hour),
			Analysis:  domain.MealAnalysis{TotalNutrition: domain.Nutrition{Calories: 600, Protein: 30, Carbs: 75, Fat: 25}},
		},
		// Previous day, excluded.
		{
			UserID:    "u1",
			Timestamp: day.Add(-2 * time.Hour),
			Analysis:  domain.MealAnalysis{TotalNutrition: domain.Nutrition{Calories: 999}},
		},
		// Another user, excluded.
		{
			UserID:    "u2",
			Timestamp: day.Add(9 * time.Hour),
			Analysis:  domain.MealAnalysis{TotalNutrition: domain.Nutrition{Calories: 999}},
		},
	}}

	goals := newStubGoalRepo()
	require.NoError(t, goals.Upsert(context.Background(), &domain.Goals{
		UserID: "u1", DailyCalories: 2000, ProteinG: 100, CarbsG: 250, FatG: 70,
	}))

	svc := NewMealService(MealDependencies{MealRepo: meals, GoalRepo: goals})
	summary, err := svc.Summary(context.Background(), "u1", day.Add(10*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", summary.Date)
	assert.Equal(t, 2, summary.MealsCount)
	assert.Equal(t, map[string]float64{"calories": 1000, "protein": 50, "carbs": 125, "fat": 35}, summary.Totals)
	assert.Equal(t, map[string]float64{
		"calories_pct": 50,
		"protein_pct":  50,
		"carbs_pct":    50,
		"fat_pct":      50,
	}, summary.Progress)
}

func TestMealService_SummaryDefaultGoals(t *testing.T) {
	t.Parallel()

	svc := NewMealService(MealDependencies{MealRepo: &stubMealRepo{}, GoalRepo: newStubGoalRepo()})
	summary, err := svc.Summary(context.Background(), "u1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultGoals(), summary.Goals)
	assert.Zero(t, summary.MealsCount)
	assert.Equal(t, 0.0, summary.Progress["calories_pct"])
}
