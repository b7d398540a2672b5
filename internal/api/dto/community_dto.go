package dto

import "github.com/spec-kit/nutrition-service/internal/domain"

// CommentRequest payload for POST /community/comment/:postID.
type CommentRequest struct {
	Text string `json:"text"`
}

// FeedResponse is one page of community posts.
type FeedResponse struct {
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
	Posts   []domain.Post `json:"posts"`
}

// CommentsResponse lists a post's comments.
type CommentsResponse struct {
	Count    int              `json:"count"`
	Comments []domain.Comment `json:"comments"`
}

// ProfileResponse summarizes a user's community activity.
type ProfileResponse struct {
	UserID     string `json:"user_id"`
	TotalPosts int64  `json:"total_posts"`
	TotalLikes int64  `json:"total_likes"`
}
