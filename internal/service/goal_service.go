package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/repository"
)

// GoalService manages per-user daily nutrition targets.
type GoalService struct {
	goals repository.GoalRepository
}

// NewGoalService constructs the service.
func NewGoalService(goals repository.GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

// Set upserts the user's goals.
func (s *GoalService) Set(ctx context.Context, userID string, goals domain.Goals) error {
	goals.UserID = userID
	return s.goals.Upsert(ctx, &goals)
}

// Get returns the user's goals, falling back to defaults when none were set.
func (s *GoalService) Get(ctx context.Context, userID string) (*domain.Goals, error) {
	goals, err := s.goals.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fallback := domain.DefaultGoals()
			return &fallback, nil
		}
		return nil, err
	}
	return goals, nil
}
