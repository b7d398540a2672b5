package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrition-service/internal/api/dto"
	"github.com/spec-kit/nutrition-service/internal/auth"
	"github.com/spec-kit/nutrition-service/internal/service"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// MealsHandler exposes analysis, history and summary endpoints.
type MealsHandler struct {
	meals *service.MealService
}

// NewMealsHandler constructs handler.
func NewMealsHandler(mealService *service.MealService) *MealsHandler {
	return &MealsHandler{meals: mealService}
}

// Analyze handles POST /analyze. Multipart body: image file plus an optional
// cuisine_hint form field.
func (h *MealsHandler) Analyze(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	image, err := readImageFile(c)
	if err != nil {
		return err
	}

	result, err := h.meals.Analyze(c.UserContext(), user, image, c.FormValue("cuisine_hint"))
	if err != nil {
		return err
	}

	return c.JSON(dto.AnalyzeResponse{
		Analysis: result.Analysis,
		ImageURL: result.ImageURL,
	})
}

// History handles GET /history?limit=N.
func (h *MealsHandler) History(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit := c.QueryInt("limit", 5)
	meals, err := h.meals.History(c.UserContext(), user.ID, limit)
	if err != nil {
		return err
	}

	views := make([]dto.MealView, 0, len(meals))
	for _, meal := range meals {
		views = append(views, dto.MealView{
			ID:        meal.ID,
			ImageURL:  meal.ImageURL,
			Analysis:  meal.Analysis,
			Timestamp: meal.Timestamp.Format(time.RFC3339),
		})
	}

	return c.JSON(dto.HistoryResponse{Count: len(views), Meals: views})
}

// Summary handles GET /summary?date=YYYY-MM-DD.
func (h *MealsHandler) Summary(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
		}
		day = parsed
	}

	summary, err := h.meals.Summary(c.UserContext(), user.ID, day)
	if err != nil {
		return err
	}

	return c.JSON(dto.SummaryResponse{
		Date:       summary.Date,
		Totals:     summary.Totals,
		Goals:      summary.Goals,
		Progress:   summary.Progress,
		MealsCount: summary.MealsCount,
	})
}

// readImageFile pulls the uploaded image out of the multipart form, rejecting
// non-image content types before any upstream call is made.
func readImageFile(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, apperrors.NewValidationError("image file required", nil)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("only image files are allowed", map[string]any{"content_type": contentType})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return image, nil
}
