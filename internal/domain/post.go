package domain

import "time"

// Post is a community feed entry. LikesCount is denormalized onto the post and
// adjusted on every like toggle.
type Post struct {
	ID          string    `bson:"_id" json:"id"`
	AuthorID    string    `bson:"author_id" json:"author_id"`
	AuthorEmail string    `bson:"author_email" json:"author_email"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Caption     string    `bson:"caption" json:"caption"`
	Nutrition   Nutrition `bson:"nutrition" json:"nutrition"`
	LikesCount  int       `bson:"likes_count" json:"likes_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Like records one user liking one post.
type Like struct {
	ID     string `bson:"_id"`
	PostID string `bson:"post_id"`
	UserID string `bson:"user_id"`
}

// Comment is a user comment on a post.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	PostID    string    `bson:"post_id" json:"post_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
