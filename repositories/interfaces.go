package repositories

import (
	"context"
	"time"

	"github.com/dstl-lab/dsc10-tutor-logger/models"
)

// EventRepository handles event log data operations. Events are append-only:
// Insert is the single write path, everything else reads.
type EventRepository interface {
	// Insert appends one event and returns the store-assigned id and
	// created_at timestamp
	Insert(ctx context.Context, eventType string, userEmail *string, payload models.Payload) (int64, time.Time, error)

	// ListRecent retrieves the most recent events in descending id order,
	// capped at limit
	ListRecent(ctx context.Context, limit int) ([]*models.Event, error)

	// ListByNotebook retrieves all events whose payload notebook field
	// equals the given name, ordered by user_email, created_at, id
	ListByNotebook(ctx context.Context, notebook string) ([]*models.Event, error)

	// ListAll retrieves every event in ascending id order (bulk export)
	ListAll(ctx context.Context) ([]*models.Event, error)

	// NotebookCounts retrieves distinct notebook names with per-notebook
	// event counts, ordered by count descending. Events without a notebook
	// key are excluded.
	NotebookCounts(ctx context.Context) ([]*models.NotebookCount, error)
}
