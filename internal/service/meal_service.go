package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/events"
	"github.com/spec-kit/nutrition-service/internal/mediastore"
	"github.com/spec-kit/nutrition-service/internal/repository"
	"github.com/spec-kit/nutrition-service/internal/vision"
)

// MealService coordinates meal analysis, history and daily summaries.
type MealService struct {
	meals      repository.MealRepository
	goals      repository.GoalRepository
	analyzer   vision.Analyzer
	uploader   mediastore.Uploader
	dispatcher events.Dispatcher
	folder     string
}

// MealDependencies bundles collaborators for the meal service.
type MealDependencies struct {
	MealRepo   repository.MealRepository
	GoalRepo   repository.GoalRepository
	Analyzer   vision.Analyzer
	Uploader   mediastore.Uploader
	Dispatcher events.Dispatcher
	Folder     string
}

// AnalyzeResult is returned to the caller after a successful analysis.
type AnalyzeResult struct {
	Analysis domain.MealAnalysis
	ImageURL string
}

// DailySummary aggregates one day's meals against the user's goals.
type DailySummary struct {
	Date       string
	Totals     map[string]float64
	Goals      domain.Goals
	Progress   map[string]float64
	MealsCount int
}

// NewMealService constructs the service.
func NewMealService(deps MealDependencies) *MealService {
	return &MealService{
		meals:      deps.MealRepo,
		goals:      deps.GoalRepo,
		analyzer:   deps.Analyzer,
		uploader:   deps.Uploader,
		dispatcher: deps.Dispatcher,
		folder:     deps.Folder,
	}
}

// Analyze runs the vision model on the image, uploads it to the image host and
// persists the normalized result. Synchronous end to end; an upstream failure
// at any stage surfaces directly to the caller.
func (s *MealService) Analyze(ctx context.Context, user *domain.User, image []byte, cuisineHint string) (*AnalyzeResult, error) {
	analysis, err := s.analyzer.AnalyzeMeal(ctx, image, cuisineHint)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, image, s.folder)
	if err != nil {
		return nil, err
	}

	meal := &domain.Meal{
		UserID:   user.ID,
		Email:    user.Email,
		ImageURL: imageURL,
		Analysis: *analysis,
	}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventMealAnalyzed,
		UserID: user.ID,
		Payload: events.MealAnalyzedPayload{
			MealID:    meal.ID,
			ImageURL:  imageURL,
			ItemCount: len(analysis.Items),
			Total:     analysis.TotalNutrition,
		},
	})

	return &AnalyzeResult{Analysis: *analysis, ImageURL: imageURL}, nil
}

// History returns the user's latest meals, newest first.
func (s *MealService) History(ctx context.Context, userID string, limit int) ([]domain.Meal, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.meals.ListByUser(ctx, userID, limit)
}

// Summary aggregates the day's meals and reports progress against goals.
// Users without stored goals get the defaults.
func (s *MealService) Summary(ctx context.Context, userID string, day time.Time) (*DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	meals, err := s.meals.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{"calories": 0, "protein": 0, "carbs": 0, "fat": 0}
	for _, meal := range meals {
		total := meal.Analysis.TotalNutrition
		totals["calories"] += total.Calories
		totals["protein"] += total.Protein
		totals["carbs"] += total.Carbs
		totals["fat"] += total.Fat
	}

	goals, err := s.goals.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		fallback := domain.DefaultGoals()
		goals = &fallback
	}

	progress := map[string]float64{
		"calories_pct": percent(totals["calories"], float64(goals.DailyCalories)),
		"protein_pct":  percent(totals["protein"], float64(goals.ProteinG)),
		"carbs_pct":    percent(totals["carbs"], float64(goals.CarbsG)),
		"fat_pct":      percent(totals["fat"], float64(goals.FatG)),
	}

	return &DailySummary{
		Date:       start.Format("2006-01-02"),
		Totals:     totals,
		Goals:      *goals,
		Progress:   progress,
		MealsCount: len(meals),
	}, nil
}

func (s *MealService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func percent(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(value/target*1000) / 10
}
