package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

type CreateExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	MuscleGroup  string `json:"muscleGroup"`
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
	Equipment    string `json:"equipment"`
	Location     string `json:"location"`
	Instructions string `json:"instructions"`
}

type SetFavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

type DemoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// CreateExercise adds a catalog entry; names are unique case-insensitively.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), &domain.Exercise{
		Name:         req.Name,
		MuscleGroup:  req.MuscleGroup,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		Equipment:    req.Equipment,
		Location:     req.Location,
		Instructions: req.Instructions,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListExercises returns the full catalog.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one catalog entry.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), exerciseID)
	if err != nil {
		respondExerciseError(c, err, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// SetFavorite toggles the favorite flag on an exercise.
func (h *ExerciseHandler) SetFavorite(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	var req SetFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.exerciseService.SetFavorite(c.Request.Context(), exerciseID, *req.Favorite); err != nil {
		respondExerciseError(c, err, "Failed to update exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteExercise removes a catalog entry and its demo media.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), exerciseID); err != nil {
		respondExerciseError(c, err, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestDemoUpload returns a presigned PUT URL for demo video upload.
func (h *ExerciseHandler) RequestDemoUpload(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	var req DemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, err := h.exerciseService.RequestDemoUpload(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		respondExerciseError(c, err, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// DemoDownloadURL returns a presigned GET URL for the demo video.
func (h *ExerciseHandler) DemoDownloadURL(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	downloadURL, err := h.exerciseService.DemoDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrNoDemoMedia) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		respondExerciseError(c, err, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

func respondExerciseError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrExerciseNotFound) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	abortWithError(c, http.StatusInternalServerError, fallback)
}
