// @title Class Companion API
// @version 1.0
// @description Progress tracking, interactive exercise state and AI helpers for the AI-in-practice course.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_LEARNER_TOKEN'. Without a token requests act as the local learner.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "class-companion/cmd/api/docs"
	"class-companion/internal/adapter/ai"
	"class-companion/internal/config"
	"class-companion/internal/course"
	"class-companion/internal/handler"
	"class-companion/internal/logger"
	"class-companion/internal/middleware"
	"class-companion/internal/service"
	"class-companion/internal/storage"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	courseStore, err := course.Load(cfg.Course.Path)
	if err != nil {
		appLogger.Fatal("Failed to load course", zap.String("path", cfg.Course.Path), zap.Error(err))
	}
	appLogger.Info("Course loaded", zap.Int("lessons", len(courseStore.Lessons())))
	if !courseStore.HasExercise(cfg.Wizard.LessonID, cfg.Wizard.SubLessonID, cfg.Wizard.ExerciseID) {
		appLogger.Fatal("Wizard exercise is not part of the course",
			zap.Int("lesson", cfg.Wizard.LessonID),
			zap.String("sub_lesson", cfg.Wizard.SubLessonID),
			zap.String("exercise", cfg.Wizard.ExerciseID))
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	store, closeStore, err := storage.Open(startCtx, cfg)
	cancelStart()
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Error("Failed to close storage", zap.Error(err))
		}
	}()

	// AI providers
	openRouter, err := ai.NewCompletionProvider("openrouter", cfg.AI.OpenRouter, ai.NewHTTPClient(cfg.AI.OpenRouter.Timeout))
	if err != nil {
		appLogger.Fatal("Failed to create OpenRouter provider", zap.Error(err))
	}
	openAI, err := ai.NewCompletionProvider("openai", cfg.AI.OpenAI, ai.NewHTTPClient(cfg.AI.OpenAI.Timeout))
	if err != nil {
		appLogger.Fatal("Failed to create OpenAI provider", zap.Error(err))
	}
	assistant := ai.NewAssistantClient(cfg.AI.OpenAI, ai.NewHTTPClient(cfg.AI.OpenAI.Timeout))

	// Services
	persistence := service.NewProgressPersistence(store, cfg.StoreKeyPrefix())
	progressService := service.NewProgressService(courseStore, persistence)
	wizardService := service.NewWizardService(persistence, progressService, openRouter, cfg.Wizard)
	aiService := service.NewAIService(openRouter, openAI, assistant, cfg.AI.OpenAI.AssistantID)
	learnerService, err := service.NewLearnerService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create LearnerService", zap.Error(err))
	}

	handlers := handler.Handlers{
		Progress:     handler.NewProgressHandler(courseStore, progressService),
		ExerciseData: handler.NewExerciseDataHandler(progressService),
		Wizard:       handler.NewWizardHandler(wizardService),
		AI:           handler.NewAIHandler(aiService),
		Learner:      handler.NewLearnerHandler(learnerService, store, cfg.Storage.Backend),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization,If-Match",
		ExposeHeaders: "ETag,Content-Disposition",
		MaxAge:        300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.SetupRoutes(app, handlers, learnerService)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
