package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
	workoutService service.WorkoutService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService, workoutService service.WorkoutService) *ProgramHandler {
	return &ProgramHandler{programService: programService, workoutService: workoutService}
}

// --- Request Structs ---

type CreateTemplateRequest struct {
	Name               string                     `json:"name" binding:"required"`
	Description        string                     `json:"description"`
	Category           string                     `json:"category" binding:"required"`
	Difficulty         string                     `json:"difficulty" binding:"required"`
	Goal               domain.Goal                `json:"goal"`
	DurationWeeks      int                        `json:"durationWeeks" binding:"required,min=1"`
	WorkoutsPerWeek    int                        `json:"workoutsPerWeek" binding:"required,min=1"`
	Schedule           []domain.ScheduleEntry     `json:"schedule" binding:"required"`
	WorkoutDefinitions []domain.WorkoutDefinition `json:"workoutDefinitions" binding:"required"`
}

type EnrollRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	// StartDate in "2006-01-02" form; defaults to today (UTC).
	StartDate string `json:"startDate"`
}

// --- Handler Methods ---

// CreateTemplate stores a new program template after structural validation.
func (h *ProgramHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template := &domain.ProgramTemplate{
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		Difficulty:         req.Difficulty,
		Goal:               req.Goal,
		DurationWeeks:      req.DurationWeeks,
		WorkoutsPerWeek:    req.WorkoutsPerWeek,
		Schedule:           req.Schedule,
		WorkoutDefinitions: req.WorkoutDefinitions,
	}

	created, err := h.programService.CreateTemplate(c.Request.Context(), template)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTemplate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create template.")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListTemplates returns the template catalog.
func (h *ProgramHandler) ListTemplates(c *gin.Context) {
	templates, err := h.programService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve templates.")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate returns one template by ID.
func (h *ProgramHandler) GetTemplate(c *gin.Context) {
	templateID, ok := pathObjectID(c, "templateId")
	if !ok {
		return
	}

	template, err := h.programService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve template.")
		}
		return
	}
	c.JSON(http.StatusOK, template)
}

// Enroll creates a new enrollment, replacing any active one.
func (h *ProgramHandler) Enroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	templateID, ok := parseObjectID(c, req.TemplateID, "templateId")
	if !ok {
		return
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD.")
			return
		}
		startDate = parsed
	}

	enrollment, err := h.programService.Enroll(c.Request.Context(), userID, templateID, startDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTemplate):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to enroll into program.")
		}
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// ActiveProgram returns the user's active enrollment.
func (h *ProgramHandler) ActiveProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	enrollment, err := h.programService.ActiveProgram(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve active program.")
		}
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

// ListPrograms returns the user's enrollment history.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// AbandonProgram ends the active enrollment without replacement.
func (h *ProgramHandler) AbandonProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.programService.AbandonProgram(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to abandon program.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Progress returns the derived progress read-model for the active enrollment.
func (h *ProgramHandler) Progress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progress, err := h.programService.Progress(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute progress.")
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ProgramWorkouts lists every workout generated by one enrollment.
func (h *ProgramHandler) ProgramWorkouts(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListProgramWorkouts(c.Request.Context(), programID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve program workouts.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}
