package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/utils"
)

// Pinger is the slice of the database pool the health check needs
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles liveness probes
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HandleHealth handles GET /health. It borrows a pooled connection for one
// round-trip query; the connection is returned on every exit path.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		_ = utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"detail": err.Error(),
		})
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
