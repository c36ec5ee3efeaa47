// @title Quiz Set API
// @version 1.0
// @description Validates, stores and serves multiple-choice question sets.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizset/internal/adapter"
	"quizset/internal/cache"
	"quizset/internal/config"
	"quizset/internal/database"
	"quizset/internal/domain"
	"quizset/internal/handler"
	"quizset/internal/loader"
	"quizset/internal/logger"
	"quizset/internal/middleware"
	"quizset/internal/repository"
	"quizset/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
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

	ctx := context.Background()

	// Connect to database
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The cache is optional; without an address every read goes to the database.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("Redis address not configured, question set cache disabled")
	}

	questionSetRepository := repository.NewQuestionSetDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)
	questionSetService := service.NewQuestionSetService(questionSetRepository, txManager, cacheAdapter, cfg)

	if cfg.Content.Dir != "" {
		if err := seedContent(ctx, cfg.Content.Dir, questionSetService); err != nil {
			appLogger.Fatal("Failed to load question set content", zap.String("dir", cfg.Content.Dir), zap.Error(err))
		}
	}

	questionSetHandler := handler.NewQuestionSetHandler(questionSetService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", handler.Health(cacheAdapter))
	questionSetHandler.Register(app.Group("/api"))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// seedContent registers every question set under dir. Nothing is stored unless all of them validate.
func seedContent(ctx context.Context, dir string, svc service.QuestionSetService) error {
	files, err := loader.LoadDir(ctx, dir)
	if err != nil {
		return err
	}
	sets := make([]domain.QuestionSet, len(files))
	for i, f := range files {
		sets[i] = f.Set
	}
	if err := svc.RegisterAll(ctx, sets); err != nil {
		return err
	}
	logger.Get().Info("Loaded question set content", zap.String("dir", dir), zap.Int("count", len(sets)))
	return nil
}
