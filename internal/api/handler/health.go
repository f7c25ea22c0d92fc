package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/response"
)

// Pinger reports whether a backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and storage health
type HealthHandler struct {
	storage Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, logger: logger}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Warn("storage ping failed", slog.String("error", err.Error()))
		apierr.WriteError(w, apierr.NewStorageUnavailableError())
		return
	}

	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: "ok"})
}
