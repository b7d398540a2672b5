package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/nutrition-service/internal/domain"
)

// MealRepository encapsulates meal persistence.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Meal, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Meal, error)
}

type mealRepository struct {
	coll *mongo.Collection
}

// NewMealRepository instantiates repository.
func NewMealRepository(db *mongo.Database) MealRepository {
	return &mealRepository{coll: db.Collection("meals")}
}

func (r *mealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.Timestamp.IsZero() {
		meal.Timestamp = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, meal)
	return err
}

func (r *mealRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Meal, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []domain.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Meal, error) {
	filter := bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": from, "$lte": to},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []domain.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}
