package api

import (
	"fmt"
	"io"
	"net/http"

	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/relay"

	"github.com/gin-gonic/gin"
)

// WatchHandler exposes the live-workout relay to companion watch clients.
type WatchHandler struct {
	hub     *relay.Hub
	metrics *metrics.Manager
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(hub *relay.Hub, metrics *metrics.Manager) *WatchHandler {
	return &WatchHandler{hub: hub, metrics: metrics}
}

// --- Request Structs ---

type HealthDataRequest struct {
	HeartRate int `json:"heartRate" binding:"required,min=1"`
}

// --- Handler Methods ---

// Stream attaches the caller as a relay mirror over Server-Sent Events.
// The stream is fire-and-forget: messages published while the client is slow
// are dropped, and the connection ends when the client disconnects.
func (h *WatchHandler) Stream(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	messages, cancel := h.hub.Subscribe()
	defer cancel()

	h.metrics.GaugeWatchSubscribers.Inc()
	defer h.metrics.GaugeWatchSubscribers.Dec()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent(string(msg.Type), msg)
			return true
		case <-clientGone:
			return false
		}
	})
}

// PublishHealthData accepts watch-originated samples and relays them to the
// other attached mirrors (typically the phone UI).
func (h *WatchHandler) PublishHealthData(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req HealthDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	h.hub.Publish(relay.TypeHealthDataUpdate, relay.HealthDataPayload{HeartRate: req.HeartRate})
	h.metrics.CounterRelayMessages.Inc()
	c.Status(http.StatusAccepted)
}
