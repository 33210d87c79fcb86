package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type CustomExerciseSpec struct {
	Name         string `json:"name" binding:"required"`
	TargetSets   int    `json:"targetSets" binding:"required,min=1"`
	TargetReps   string `json:"targetReps" binding:"required"`
	TargetWeight string `json:"targetWeight"`
	RestSeconds  int    `json:"restSeconds"`
	Notes        string `json:"notes"`
}

type CreateCustomWorkoutRequest struct {
	Name             string               `json:"name" binding:"required"`
	Description      string               `json:"description"`
	EstimatedMinutes int                  `json:"estimatedMinutes"`
	Difficulty       string               `json:"difficulty"`
	Goal             domain.Goal          `json:"goal"`
	Exercises        []CustomExerciseSpec `json:"exercises" binding:"required,min=1"`
}

// --- Handler Methods ---

// ListWorkouts returns every non-deleted workout owned by the caller.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout returns one workout if the caller owns it.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondWorkoutError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CreateCustomWorkout builds a standalone workout from user-authored specs.
// Target reps/weight are free-text and parsed the same way program sessions
// are.
func (h *WorkoutHandler) CreateCustomWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCustomWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	specs := make([]domain.ExerciseSpec, len(req.Exercises))
	for i, e := range req.Exercises {
		specs[i] = domain.ExerciseSpec{
			Name:         e.Name,
			TargetSets:   e.TargetSets,
			TargetReps:   e.TargetReps,
			TargetWeight: e.TargetWeight,
			RestSeconds:  e.RestSeconds,
			Notes:        e.Notes,
		}
	}

	workout, err := h.workoutService.CreateCustomWorkout(
		c.Request.Context(), userID,
		req.Name, req.Description, req.EstimatedMinutes, req.Difficulty, req.Goal,
		specs,
	)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// ActivateWorkout makes the given workout the caller's single active one.
func (h *WorkoutHandler) ActivateWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	workout, err := h.workoutService.SetActiveWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondWorkoutError(c, err, "Failed to activate workout.")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeactivateWorkouts clears the caller's active workout, if any.
func (h *WorkoutHandler) DeactivateWorkouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeactivateAll(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to deactivate workouts.")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWorkout soft-deletes a workout owned by the caller.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		respondWorkoutError(c, err, "Failed to delete workout.")
		return
	}
	c.Status(http.StatusNoContent)
}

func respondWorkoutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrWorkoutDeleted):
		abortWithError(c, http.StatusNotFound, service.ErrWorkoutNotFound.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
