package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/events"
	"github.com/spec-kit/nutrition-service/internal/repository"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

type stubMealRepo struct {
	meals []domain.Meal
}

func (r *stubMealRepo) Create(_ context.Context, meal *domain.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.Timestamp.IsZero() {
		meal.Timestamp = time.Now().UTC()
	}
	r.meals = append(r.meals, *meal)
	return nil
}

func (r *stubMealRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.Meal, error) {
	var out []domain.Meal
	for i := len(r.meals) - 1; i >= 0 && len(out) < limit; i-- {
		if r.meals[i].UserID == userID {
			out = append(out, r.meals[i])
		}
	}
	return out, nil
}

func (r *stubMealRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]domain.Meal, error) {
	var out []domain.Meal
	for _, meal := range r.meals {
		if meal.UserID == userID && !meal.Timestamp.Before(from) && !meal.Timestamp.After(to) {
			out = append(out, meal)
		}
	}
	return out, nil
}

type stubGoalRepo struct {
	goals map[string]*domain.Goals
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: map[string]*domain.Goals{}}
}

func (r *stubGoalRepo) Upsert(_ context.Context, goals *domain.Goals) error {
	copied := *goals
	r.goals[goals.UserID] = &copied
	return nil
}

func (r *stubGoalRepo) GetByUser(_ context.Context, userID string) (*domain.Goals, error) {
	goals, ok := r.goals[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return goals, nil
}

type stubPostRepo struct {
	posts    []domain.Post
	likes    map[string]*domain.Like
	comments []domain.Comment
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{likes: map[string]*domain.Like{}}
}

func (r *stubPostRepo) CreatePost(_ context.Context, post *domain.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	r.posts = append(r.posts, *post)
	return nil
}

func (r *stubPostRepo) ListPosts(_ context.Context, filter repository.PostFilter) ([]domain.Post, int64, error) {
	var matched []domain.Post
	for i := len(r.posts) - 1; i >= 0; i-- {
		post := r.posts[i]
		if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
			continue
		}
		matched = append(matched, post)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubPostRepo) CountPostsByAuthor(_ context.Context, authorID string) (int64, error) {
	var count int64
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *stubPostRepo) SumLikesByAuthor(_ context.Context, authorID string) (int64, error) {
	var sum int64
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			sum += int64(post.LikesCount)
		}
	}
	return sum, nil
}

func (r *stubPostRepo) GetLike(_ context.Context, postID, userID string) (*domain.Like, error) {
	like, ok := r.likes[postID+"/"+userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return like, nil
}

func (r *stubPostRepo) CreateLike(_ context.Context, like *domain.Like) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	r.likes[like.PostID+"/"+like.UserID] = like
	return nil
}

func (r *stubPostRepo) DeleteLike(_ context.Context, id string) error {
	for key, like := range r.likes {
		if like.ID == id {
			delete(r.likes, key)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *stubPostRepo) AdjustLikesCount(_ context.Context, postID string, delta int) error {
	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts[i].LikesCount += delta
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *stubPostRepo) CreateComment(_ context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *stubPostRepo) ListComments(_ context.Context, postID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type stubAnalyzer struct {
	analysis *domain.MealAnalysis
	err      error
	hints    []string
}

func (a *stubAnalyzer) AnalyzeMeal(_ context.Context, _ []byte, cuisineHint string) (*domain.MealAnalysis, error) {
	a.hints = append(a.hints, cuisineHint)
	if a.err != nil {
		return nil, a.err
	}
	return a.analysis, nil
}

type stubUploader struct {
	url      string
	err      error
	uploaded int
}

func (u *stubUploader) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	u.uploaded++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
