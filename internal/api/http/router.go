package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrition-service/internal/api/http/handlers"
	"github.com/spec-kit/nutrition-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Meals          *handlers.MealsHandler
	Goals          *handlers.GoalsHandler
	Community      *handlers.CommunityHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	app.Post("/analyze", cfg.AuthMiddleware.Handle, cfg.RateLimiter.Handle, cfg.Meals.Analyze)
	app.Get("/history", cfg.AuthMiddleware.Handle, cfg.Meals.History)
	app.Get("/summary", cfg.AuthMiddleware.Handle, cfg.Meals.Summary)

	app.Post("/goals", cfg.AuthMiddleware.Handle, cfg.Goals.Set)
	app.Get("/goals", cfg.AuthMiddleware.Handle, cfg.Goals.Get)

	community := app.Group("/community")
	community.Post("/post", cfg.AuthMiddleware.Handle, cfg.RateLimiter.Handle, cfg.Community.CreatePost)
	community.Get("/feed", cfg.Community.Feed)
	community.Post("/like/:postID", cfg.AuthMiddleware.Handle, cfg.Community.Like)
	community.Post("/comment/:postID", cfg.AuthMiddleware.Handle, cfg.Community.Comment)
	community.Get("/comments/:postID", cfg.Community.Comments)

	profile := app.Group("/profile")
	profile.Get("/:userID", cfg.Community.Profile)
	profile.Get("/:userID/posts", cfg.Community.ProfilePosts)
}
