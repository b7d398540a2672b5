package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/events"
	"github.com/spec-kit/nutrition-service/internal/mediastore"
	"github.com/spec-kit/nutrition-service/internal/repository"
	"github.com/spec-kit/nutrition-service/internal/vision"
)

// CommunityService coordinates the post feed, likes, comments and profiles.
type CommunityService struct {
	posts      repository.PostRepository
	analyzer   vision.Analyzer
	uploader   mediastore.Uploader
	dispatcher events.Dispatcher
	folder     string
}

// CommunityDependencies bundles collaborators for the community service.
type CommunityDependencies struct {
	PostRepo   repository.PostRepository
	Analyzer   vision.Analyzer
	Uploader   mediastore.Uploader
	Dispatcher events.Dispatcher
	Folder     string
}

// FeedPage is one page of community posts.
type FeedPage struct {
	Page    int
	Limit   int
	Total   int64
	HasMore bool
	Posts   []domain.Post
}

// ProfileStats summarizes a user's community activity.
type ProfileStats struct {
	UserID     string
	TotalPosts int64
	TotalLikes int64
}

// NewCommunityService constructs the service.
func NewCommunityService(deps CommunityDependencies) *CommunityService {
	return &CommunityService{
		posts:      deps.PostRepo,
		analyzer:   deps.Analyzer,
		uploader:   deps.Uploader,
		dispatcher: deps.Dispatcher,
		folder:     deps.Folder,
	}
}

// CreatePost analyzes the shared photo, uploads it and persists the post with
// the total nutrition attached.
func (s *CommunityService) CreatePost(ctx context.Context, user *domain.User, image []byte, caption string) (*domain.Post, error) {
	analysis, err := s.analyzer.AnalyzeMeal(ctx, image, "")
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, image, s.folder)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:    user.ID,
		AuthorEmail: user.Email,
		ImageURL:    imageURL,
		Caption:     strings.TrimSpace(caption),
		Nutrition:   analysis.TotalNutrition,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostCreated,
		UserID:  user.ID,
		Payload: events.PostCreatedPayload{PostID: post.ID, Caption: post.Caption},
	})
	return post, nil
}

// Feed returns one page of posts, newest first, optionally text-searched.
func (s *CommunityService) Feed(ctx context.Context, page, limit int, search string) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	offset := (page - 1) * limit

	filter := repository.PostFilter{Limit: limit, Offset: offset}
	if search != "" {
		filter.SearchTerm = &search
	}

	posts, total, err := s.posts.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(offset+limit) < total,
		Posts:   posts,
	}, nil
}

// ToggleLike likes the post, or unlikes it when the user already liked it.
// Returns the resulting liked state.
func (s *CommunityService) ToggleLike(ctx context.Context, user *domain.User, postID string) (bool, error) {
	existing, err := s.posts.GetLike(ctx, postID, user.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}

	liked := existing == nil
	if liked {
		like := &domain.Like{PostID: postID, UserID: user.ID}
		if err := s.posts.CreateLike(ctx, like); err != nil {
			return false, err
		}
		if err := s.posts.AdjustLikesCount(ctx, postID, 1); err != nil {
			return false, err
		}
	} else {
		if err := s.posts.DeleteLike(ctx, existing.ID); err != nil {
			return false, err
		}
		if err := s.posts.AdjustLikesCount(ctx, postID, -1); err != nil {
			return false, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostLiked,
		UserID:  user.ID,
		Payload: events.PostLikedPayload{PostID: postID, Liked: liked},
	})
	return liked, nil
}

// AddComment stores a comment on the post.
func (s *CommunityService) AddComment(ctx context.Context, user *domain.User, postID, text string) (*domain.Comment, error) {
	comment := &domain.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   strings.TrimSpace(text),
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostCommented,
		UserID:  user.ID,
		Payload: events.PostCommentedPayload{PostID: postID, CommentID: comment.ID},
	})
	return comment, nil
}

// ListComments returns the post's comments, oldest first.
func (s *CommunityService) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	return s.posts.ListComments(ctx, postID)
}

// Profile reports public post and like totals for a user.
func (s *CommunityService) Profile(ctx context.Context, userID string) (*ProfileStats, error) {
	totalPosts, err := s.posts.CountPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.posts.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileStats{UserID: userID, TotalPosts: totalPosts, TotalLikes: totalLikes}, nil
}

// UserPosts returns one page of a user's posts, newest first.
func (s *CommunityService) UserPosts(ctx context.Context, userID string, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	posts, total, err := s.posts.ListPosts(ctx, repository.PostFilter{
		AuthorID: &userID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(offset+limit) < total,
		Posts:   posts,
	}, nil
}

func (s *CommunityService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
