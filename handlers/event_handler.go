package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/models"
	"github.com/dstl-lab/dsc10-tutor-logger/repositories"
	"github.com/dstl-lab/dsc10-tutor-logger/utils"
)

// CreateEventResponse is the body returned for a successful ingestion
type CreateEventResponse struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
}

// EventHandler handles event ingestion requests
type EventHandler struct {
	events repositories.EventRepository
	logger *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events repositories.EventRepository, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger,
	}
}

// HandleCreate handles POST /events.
// Validation failures are rejected before any database interaction.
// Duplicate submissions create duplicate rows; there is no dedup.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteUnprocessableEntity(w, "Invalid request body", map[string]interface{}{
			"body": "must be a JSON object",
		})
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := make(map[string]interface{})
		for field, reason := range utils.GetValidationFields(err) {
			details[field] = reason
		}
		_ = utils.WriteUnprocessableEntity(w, "Validation failed", details)
		return
	}

	if req.Payload == nil {
		req.Payload = models.Payload{}
	}

	id, createdAt, err := h.events.Insert(r.Context(), req.EventType, req.UserEmail, req.Payload)
	if err != nil {
		h.logger.Error("failed to insert event",
			zap.String("event_type", req.EventType),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to record event")
		return
	}

	_ = utils.WriteCreated(w, CreateEventResponse{
		ID:        id,
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
	})
}
