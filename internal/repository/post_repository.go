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

// PostFilter captures feed listing parameters.
type PostFilter struct {
	AuthorID   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// PostRepository encapsulates community post, like and comment persistence.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	ListPosts(ctx context.Context, filter PostFilter) ([]domain.Post, int64, error)
	CountPostsByAuthor(ctx context.Context, authorID string) (int64, error)
	SumLikesByAuthor(ctx context.Context, authorID string) (int64, error)

	GetLike(ctx context.Context, postID, userID string) (*domain.Like, error)
	CreateLike(ctx context.Context, like *domain.Like) error
	DeleteLike(ctx context.Context, id string) error
	AdjustLikesCount(ctx context.Context, postID string, delta int) error

	CreateComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
}

type postRepository struct {
	posts    *mongo.Collection
	likes    *mongo.Collection
	comments *mongo.Collection
}

// NewPostRepository instantiates repository.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{
		posts:    db.Collection("community_posts"),
		likes:    db.Collection("community_likes"),
		comments: db.Collection("community_comments"),
	}
}

func (r *postRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	_, err := r.posts.InsertOne(ctx, post)
	return err
}

func (r *postRepository) ListPosts(ctx context.Context, filter PostFilter) ([]domain.Post, int64, error) {
	query := bson.M{}
	if filter.AuthorID != nil {
		query["author_id"] = *filter.AuthorID
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		query["$text"] = bson.M{"$search": *filter.SearchTerm}
	}

	total, err := r.posts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.posts.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []domain.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) CountPostsByAuthor(ctx context.Context, authorID string) (int64, error) {
	return r.posts.CountDocuments(ctx, bson.M{"author_id": authorID})
}

func (r *postRepository) SumLikesByAuthor(ctx context.Context, authorID string) (int64, error) {
	cursor, err := r.posts.Find(ctx, bson.M{"author_id": authorID},
		options.Find().SetProjection(bson.M{"likes_count": 1}))
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var total int64
	for cursor.Next(ctx) {
		var doc struct {
			LikesCount int64 `bson:"likes_count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, err
		}
		total += doc.LikesCount
	}
	return total, cursor.Err()
}

func (r *postRepository) GetLike(ctx context.Context, postID, userID string) (*domain.Like, error) {
	var like domain.Like
	err := r.likes.FindOne(ctx, bson.M{"post_id": postID, "user_id": userID}).Decode(&like)
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *postRepository) CreateLike(ctx context.Context, like *domain.Like) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	_, err := r.likes.InsertOne(ctx, like)
	return err
}

func (r *postRepository) DeleteLike(ctx context.Context, id string) error {
	_, err := r.likes.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *postRepository) AdjustLikesCount(ctx context.Context, postID string, delta int) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

func (r *postRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := r.comments.InsertOne(ctx, comment)
	return err
}

func (r *postRepository) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	cursor, err := r.comments.Find(ctx, bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
