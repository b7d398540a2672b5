package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/nutrition-service/internal/domain"
)

// GoalRepository encapsulates per-user nutrition goal persistence.
// GetByUser returns mongo.ErrNoDocuments when the user never set goals.
type GoalRepository interface {
	Upsert(ctx context.Context, goals *domain.Goals) error
	GetByUser(ctx context.Context, userID string) (*domain.Goals, error)
}

type goalRepository struct {
	coll *mongo.Collection
}

// NewGoalRepository instantiates repository.
func NewGoalRepository(db *mongo.Database) GoalRepository {
	return &goalRepository{coll: db.Collection("user_goals")}
}

func (r *goalRepository) Upsert(ctx context.Context, goals *domain.Goals) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"daily_calories": goals.DailyCalories,
			"protein_g":      goals.ProteinG,
			"carbs_g":        goals.CarbsG,
			"fat_g":          goals.FatG,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"user_id":    goals.UserID,
			"created_at": now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": goals.UserID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *goalRepository) GetByUser(ctx context.Context, userID string) (*domain.Goals, error) {
	var goals domain.Goals
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&goals); err != nil {
		return nil, err
	}
	return &goals, nil
}
