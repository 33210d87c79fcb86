package api

import (
	"net/http"

	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/relay"
	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything SetupRoutes wires into handlers.
type Services struct {
	Auth        service.AuthService
	Exercise    service.ExerciseService
	Program     service.ProgramService
	Workout     service.WorkoutService
	Session     service.SessionService
	CheckIn     service.CheckInService
	Achievement service.AchievementService
}

// SetupRoutes registers every HTTP endpoint on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	svcs Services,
	hub *relay.Hub,
	m *metrics.Manager,
	registry *prometheus.Registry,
) {
	authHandler := NewAuthHandler(svcs.Auth)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)
	programHandler := NewProgramHandler(svcs.Program, svcs.Workout)
	workoutHandler := NewWorkoutHandler(svcs.Workout)
	sessionHandler := NewSessionHandler(svcs.Session)
	checkInHandler := NewCheckInHandler(svcs.CheckIn)
	achievementHandler := NewAchievementHandler(svcs.Achievement)
	watchHandler := NewWatchHandler(hub, m)

	authMiddleware := AuthMiddleware(jwtSecret)
	router.Use(MetricsMiddleware(m))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId/favorite", exerciseHandler.SetFavorite)
			exerciseGroup.DELETE("/:exerciseId", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:exerciseId/demo/upload-url", exerciseHandler.RequestDemoUpload)
			exerciseGroup.GET("/:exerciseId/demo/download-url", exerciseHandler.DemoDownloadURL)
		}

		// --- Program Templates & Enrollments ---
		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", programHandler.CreateTemplate)
			templateGroup.GET("", programHandler.ListTemplates)
			templateGroup.GET("/:templateId", programHandler.GetTemplate)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.POST("/enroll", programHandler.Enroll)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/active", programHandler.ActiveProgram)
			programGroup.DELETE("/active", programHandler.AbandonProgram)
			programGroup.GET("/active/progress", programHandler.Progress)
			programGroup.GET("/:programId/workouts", programHandler.ProgramWorkouts)
		}

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateCustomWorkout)
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.POST("/:workoutId/activate", workoutHandler.ActivateWorkout)
			workoutGroup.POST("/deactivate", workoutHandler.DeactivateWorkouts)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteWorkout)
		}

		// --- Workout Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.StartSession)
			sessionGroup.GET("/current", sessionHandler.CurrentSession)
			sessionGroup.GET("", sessionHandler.SessionHistory)
			sessionGroup.POST("/:sessionId/pause", sessionHandler.PauseSession)
			sessionGroup.POST("/:sessionId/resume", sessionHandler.ResumeSession)
			sessionGroup.POST("/:sessionId/sets", sessionHandler.LogSet)
			sessionGroup.POST("/:sessionId/rest", sessionHandler.StartRest)
			sessionGroup.DELETE("/:sessionId/rest", sessionHandler.EndRest)
			sessionGroup.POST("/:sessionId/complete", sessionHandler.CompleteSession)
			sessionGroup.POST("/:sessionId/cancel", sessionHandler.CancelSession)
			sessionGroup.POST("/:sessionId/start-over", sessionHandler.StartOverSession)
		}

		// --- Daily Check-Ins ---
		checkInGroup := protected.Group("/check-ins")
		{
			checkInGroup.POST("", checkInHandler.RecordCheckIn)
			checkInGroup.GET("/today", checkInHandler.TodayCheckIn)
			checkInGroup.GET("/summary", checkInHandler.CheckInSummary)
		}

		// --- Achievements ---
		protected.GET("/achievements", achievementHandler.ListAchievements)

		// --- Watch Relay ---
		watchGroup := protected.Group("/watch")
		{
			watchGroup.GET("/stream", watchHandler.Stream)
			watchGroup.POST("/health", watchHandler.PublishHealthData)
		}
	}
}
