package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

// streamFeed pushes live readings for one hazard as server-sent events.
// Subscribing starts the hazard's feed loop if it is not already running,
// and the loop winds down again when the last client disconnects.
func (h *Handler) streamFeed(c *gin.Context) {
	hazard, ok := models.ParseHazardType(c.Param("hazard"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown hazard type"})
		return
	}

	id, events, err := h.feeds.Subscribe(hazard)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feed unavailable"})
		return
	}
	defer h.feeds.Unsubscribe(hazard, id)

	slog.Debug("feed subscriber connected", "hazard", hazard, "remote", c.ClientIP())

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("reading", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	slog.Debug("feed subscriber disconnected", "hazard", hazard, "remote", c.ClientIP())
}
