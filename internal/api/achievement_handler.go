package api

import (
	"net/http"

	"fitstride/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AchievementHandler holds the achievement service dependency.
type AchievementHandler struct {
	achievementService service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// ListAchievements returns every badge with earned state and progress.
// Achievements are derived from activity on each request, never stored.
func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	achievements, err := h.achievementService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve achievements.")
		return
	}
	c.JSON(http.StatusOK, achievements)
}
