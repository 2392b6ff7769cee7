package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
	"github.com/mcoot/memorygame-go/internal/api/response"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the health check
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. A nil pinger always reports ok.
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, logger: logger}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", slog.Any("error", err))
			apierr.WriteError(w, apierr.NewUnavailableError("Storage unavailable"))
			return
		}
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
