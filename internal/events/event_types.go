package events

import (
	"time"

	"github.com/spec-kit/nutrition-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMealAnalyzed  EventType = "meal_analyzed"
	EventPostCreated   EventType = "post_created"
	EventPostLiked     EventType = "post_liked"
	EventPostCommented EventType = "post_commented"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MealAnalyzedPayload payload.
type MealAnalyzedPayload struct {
	MealID    string           `json:"meal_id"`
	ImageURL  string           `json:"image_url"`
	ItemCount int              `json:"item_count"`
	Total     domain.Nutrition `json:"total"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID  string `json:"post_id"`
	Caption string `json:"caption"`
}

// PostLikedPayload payload.
type PostLikedPayload struct {
	PostID string `json:"post_id"`
	Liked  bool   `json:"liked"`
}

// PostCommentedPayload payload.
type PostCommentedPayload struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
}
