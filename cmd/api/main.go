package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nutrition-service/internal/api/http"
	"github.com/spec-kit/nutrition-service/internal/api/http/handlers"
	"github.com/spec-kit/nutrition-service/internal/auth"
	"github.com/spec-kit/nutrition-service/internal/config"
	"github.com/spec-kit/nutrition-service/internal/events"
	"github.com/spec-kit/nutrition-service/internal/mediastore"
	"github.com/spec-kit/nutrition-service/internal/observability"
	"github.com/spec-kit/nutrition-service/internal/persistence"
	"github.com/spec-kit/nutrition-service/internal/repository"
	"github.com/spec-kit/nutrition-service/internal/service"
	"github.com/spec-kit/nutrition-service/internal/vision"
	"github.com/spec-kit/nutrition-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	db := mongo.Database
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	postRepo := repository.NewPostRepository(db)

	analyzer := vision.NewClient(cfg.Gemini)
	uploader := mediastore.NewCloudinaryClient(cfg.Cloudinary)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	mealService := service.NewMealService(service.MealDependencies{
		MealRepo:   mealRepo,
		GoalRepo:   goalRepo,
		Analyzer:   analyzer,
		Uploader:   uploader,
		Dispatcher: dispatcher,
		Folder:     cfg.Cloudinary.Folder,
	})
	goalService := service.NewGoalService(goalRepo)
	communityService := service.NewCommunityService(service.CommunityDependencies{
		PostRepo:   postRepo,
		Analyzer:   analyzer,
		Uploader:   uploader,
		Dispatcher: dispatcher,
		Folder:     cfg.Cloudinary.Folder,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)
	rateLimiter := httptransport.NewRateLimiter(redis, logger, 10, time.Minute)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis)
	usersHandler := handlers.NewUsersHandler(authService)
	mealsHandler := handlers.NewMealsHandler(mealService)
	goalsHandler := handlers.NewGoalsHandler(goalService)
	communityHandler := handlers.NewCommunityHandler(communityService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Meals:          mealsHandler,
		Goals:          goalsHandler,
		Community:      communityHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
