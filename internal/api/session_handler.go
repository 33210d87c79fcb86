package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request Structs ---

type StartSessionRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

type LogSetRequest struct {
	ExerciseName string   `json:"exerciseName" binding:"required"`
	SetNumber    int      `json:"setNumber" binding:"required,min=1"`
	Reps         int      `json:"reps" binding:"required,min=1"`
	Weight       *float64 `json:"weight"`
}

type StartRestRequest struct {
	DurationSeconds int `json:"durationSeconds" binding:"required,min=1"`
}

type CompleteSessionRequest struct {
	DurationSeconds int    `json:"durationSeconds"`
	CaloriesBurned  int    `json:"caloriesBurned"`
	Notes           string `json:"notes"`
}

// --- Handler Methods ---

// StartSession begins executing a workout. Only one session may be in
// progress per user.
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workoutID, ok := parseObjectID(c, req.WorkoutID, "workoutId")
	if !ok {
		return
	}

	session, err := h.sessionService.Start(c.Request.Context(), userID, workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAlreadyActive):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrWorkoutDeleted):
			abortWithError(c, http.StatusNotFound, service.ErrWorkoutNotFound.Error())
		case errors.Is(err, service.ErrWorkoutAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start session.")
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CurrentSession returns the caller's in-progress session, if any.
func (h *SessionHandler) CurrentSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve session.")
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// SessionHistory returns the caller's past sessions, newest first.
func (h *SessionHandler) SessionHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve session history.")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// PauseSession pauses an in-progress session.
func (h *SessionHandler) PauseSession(c *gin.Context) {
	h.transition(c, h.sessionService.Pause, "Failed to pause session.")
}

// ResumeSession resumes a paused session.
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	h.transition(c, h.sessionService.Resume, "Failed to resume session.")
}

// LogSet appends one completed set to an in-progress session.
func (h *SessionHandler) LogSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.LogSet(c.Request.Context(), userID, sessionID, service.CompletedSetInput{
		ExerciseName: req.ExerciseName,
		SetNumber:    req.SetNumber,
		Reps:         req.Reps,
		Weight:       req.Weight,
	})
	if err != nil {
		respondSessionError(c, err, "Failed to log set.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// StartRest broadcasts a rest countdown to watch mirrors.
func (h *SessionHandler) StartRest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	var req StartRestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.sessionService.StartRest(c.Request.Context(), userID, sessionID, req.DurationSeconds); err != nil {
		respondSessionError(c, err, "Failed to start rest timer.")
		return
	}
	c.Status(http.StatusNoContent)
}

// EndRest broadcasts the end of a rest countdown.
func (h *SessionHandler) EndRest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.EndRest(c.Request.Context(), userID, sessionID); err != nil {
		respondSessionError(c, err, "Failed to end rest timer.")
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteSession finishes a session and records the completion against the
// workout and any owning program.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.Complete(c.Request.Context(), userID, sessionID, service.CompleteSessionInput{
		DurationSeconds: req.DurationSeconds,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
	})
	if err != nil {
		respondSessionError(c, err, "Failed to complete session.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// CancelSession abandons a session without recording a completion.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.Cancel(c.Request.Context(), userID, sessionID); err != nil {
		respondSessionError(c, err, "Failed to cancel session.")
		return
	}
	c.Status(http.StatusNoContent)
}

// StartOverSession deletes the session's logged sets and restarts it fresh
// against the same workout.
func (h *SessionHandler) StartOverSession(c *gin.Context) {
	h.transition(c, h.sessionService.StartOver, "Failed to restart session.")
}

// transition factors the common shape of single-session state changes.
func (h *SessionHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error),
	fallback string,
) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	session, err := fn(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondSessionError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, session)
}

func respondSessionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSessionNotInProgress), errors.Is(err, service.ErrSessionNotPaused):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
