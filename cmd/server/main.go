package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitstride/fitness-app/internal/api"
	"fitstride/fitness-app/internal/config"
	"fitstride/fitness-app/internal/events"
	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/relay"
	"fitstride/fitness-app/internal/repository/mongo"
	"fitstride/fitness-app/internal/service"
	"fitstride/fitness-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting fitstride server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() { // Run index creation in the background.
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("program_templates"))
		mongo.EnsureUserProgramIndexes(ctx, appDB.Collection("user_programs"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureCheckInIndexes(ctx, appDB.Collection("check_ins"))
		logger.Info("index creation process completed")
	}()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	userProgramRepo := mongo.NewMongoUserProgramRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	checkInRepo := mongo.NewMongoCheckInRepository(appDB)

	// --- Cross-cutting infrastructure ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("fitstride", "server", registry)
	bus := events.NewBus()
	hub := relay.NewHub(logger)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, logger)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage, logger)
	programService := service.NewProgramService(templateRepo, userProgramRepo, workoutRepo, exerciseRepo, bus, metricsManager, logger)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, workoutRepo, workoutService, programService, hub, metricsManager, logger)
	checkInService := service.NewCheckInService(checkInRepo, metricsManager, logger)
	achievementService := service.NewAchievementService(sessionRepo, userProgramRepo, logger)

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, api.Services{
		Auth:        authService,
		Exercise:    exerciseService,
		Program:     programService,
		Workout:     workoutService,
		Session:     sessionService,
		CheckIn:     checkInService,
		Achievement: achievementService,
	}, hub, metricsManager, registry)

	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the watch relay stream holds its connection open.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
