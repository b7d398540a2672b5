package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrition-service/internal/api/dto"
	"github.com/spec-kit/nutrition-service/internal/auth"
	"github.com/spec-kit/nutrition-service/internal/service"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// CommunityHandler exposes the community feed, likes, comments and profiles.
type CommunityHandler struct {
	community *service.CommunityService
}

// NewCommunityHandler constructs handler.
func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{community: communityService}
}

// CreatePost handles POST /community/post. Multipart body: image file plus a
// caption form field.
func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	caption := strings.TrimSpace(c.FormValue("caption"))
	if caption == "" {
		return apperrors.NewValidationError("caption required", nil)
	}

	image, err := readImageFile(c)
	if err != nil {
		return err
	}

	post, err := h.community.CreatePost(c.UserContext(), user, image, caption)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "post created successfully",
		"post_id": post.ID,
	})
}

// Feed handles GET /community/feed?page&limit&search.
func (h *CommunityHandler) Feed(c *fiber.Ctx) error {
	page, err := h.community.Feed(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", 10), c.Query("search"))
	if err != nil {
		return err
	}

	return c.JSON(dto.FeedResponse{
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore,
		Posts:   page.Posts,
	})
}

// Like handles POST /community/like/:postID, toggling the caller's like.
func (h *CommunityHandler) Like(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	liked, err := h.community.ToggleLike(c.UserContext(), user, c.Params("postID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// Comment handles POST /community/comment/:postID.
func (h *CommunityHandler) Comment(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}

	comment, err := h.community.AddComment(c.UserContext(), user, c.Params("postID"), req.Text)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "comment added",
		"comment_id": comment.ID,
	})
}

// Comments handles GET /community/comments/:postID.
func (h *CommunityHandler) Comments(c *fiber.Ctx) error {
	comments, err := h.community.ListComments(c.UserContext(), c.Params("postID"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CommentsResponse{Count: len(comments), Comments: comments})
}

// Profile handles GET /profile/:userID.
func (h *CommunityHandler) Profile(c *fiber.Ctx) error {
	stats, err := h.community.Profile(c.UserContext(), c.Params("userID"))
	if err != nil {
		return err
	}

	return c.JSON(dto.ProfileResponse{
		UserID:     stats.UserID,
		TotalPosts: stats.TotalPosts,
		TotalLikes: stats.TotalLikes,
	})
}

// ProfilePosts handles GET /profile/:userID/posts?page&limit.
func (h *CommunityHandler) ProfilePosts(c *fiber.Ctx) error {
	page, err := h.community.UserPosts(c.UserContext(), c.Params("userID"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}

	return c.JSON(dto.FeedResponse{
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore,
		Posts:   page.Posts,
	})
}
