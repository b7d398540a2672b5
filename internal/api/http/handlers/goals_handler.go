package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrition-service/internal/api/dto"
	"github.com/spec-kit/nutrition-service/internal/auth"
	"github.com/spec-kit/nutrition-service/internal/domain"
	"github.com/spec-kit/nutrition-service/internal/service"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// GoalsHandler exposes nutrition goal endpoints.
type GoalsHandler struct {
	goals *service.GoalService
}

// NewGoalsHandler constructs handler.
func NewGoalsHandler(goalService *service.GoalService) *GoalsHandler {
	return &GoalsHandler{goals: goalService}
}

// Set handles POST /goals.
func (h *GoalsHandler) Set(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.GoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DailyCalories <= 0 || req.ProteinG <= 0 || req.CarbsG <= 0 || req.FatG <= 0 {
		return apperrors.NewValidationError("all goal values must be positive", nil)
	}

	goals := domain.Goals{
		DailyCalories: req.DailyCalories,
		ProteinG:      req.ProteinG,
		CarbsG:        req.CarbsG,
		FatG:          req.FatG,
	}
	if err := h.goals.Set(c.UserContext(), user.ID, goals); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "nutrition goals saved successfully"})
}

// Get handles GET /goals.
func (h *GoalsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	goals, err := h.goals.Get(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(goals)
}
