package handler

import (
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/feed"
	"github.com/mcoot/battleship-go/internal/middleware"
)

// EventsHandler streams the live match feed
type EventsHandler struct {
	hub *feed.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *feed.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	feed.ServeSSE(w, r, h.hub, middleware.GetRequestID(r.Context()))
}

// WebSocket handles GET /api/v1/ws
func (h *EventsHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	feed.ServeWebSocket(w, r, h.hub, middleware.GetRequestID(r.Context()))
}
