package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckInHandler holds the check-in service dependency.
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// --- Request Structs ---

type RecordCheckInRequest struct {
	// Date in "2006-01-02" form; defaults to today (UTC).
	Date     string `json:"date"`
	Mood     int    `json:"mood" binding:"required"`
	Energy   int    `json:"energy" binding:"required"`
	Soreness int    `json:"soreness" binding:"required"`
	Notes    string `json:"notes"`
}

// --- Handler Methods ---

// RecordCheckIn creates or replaces the day's wellness entry.
func (h *CheckInHandler) RecordCheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RecordCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	checkIn, err := h.checkInService.Record(c.Request.Context(), userID, date, req.Mood, req.Energy, req.Soreness, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record check-in.")
		}
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

// TodayCheckIn returns the caller's check-in for the current UTC day.
func (h *CheckInHandler) TodayCheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	checkIn, err := h.checkInService.Today(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCheckInNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve check-in.")
		}
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

// CheckInSummary averages recent check-ins over a window (default 7 days).
func (h *CheckInHandler) CheckInSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "days must be a positive integer.")
			return
		}
		days = parsed
	}

	summary, err := h.checkInService.Summary(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute check-in summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
