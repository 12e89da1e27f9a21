package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// EventsHandler streams list change events over SSE.
type EventsHandler struct {
	hub   *services.EventHub
	lists *services.ListService
}

func NewEventsHandler(hub *services.EventHub, lists *services.ListService) *EventsHandler {
	return &EventsHandler{hub: hub, lists: lists}
}

// Stream handles GET /api/events/lists/:id. It holds the connection open and
// forwards every event published for the list until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	// Read access gate reuses the list lookup path
	if _, err := h.lists.Get(listID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	clientID := uuid.NewString()
	events := h.hub.Subscribe(listID, clientID)
	defer h.hub.Unsubscribe(listID, clientID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Initial comment so proxies flush headers immediately
	fmt.Fprintf(c.Writer, ": connected\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
