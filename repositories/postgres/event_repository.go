package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/models"
	"github.com/dstl-lab/dsc10-tutor-logger/repositories"
)

// EventRepository implements the repositories.EventRepository interface
type EventRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB, logger *zap.Logger) repositories.EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends a new event row and returns the assigned id and timestamp.
// id is strictly increasing in insertion order; created_at is assigned by
// the database, not the caller.
func (r *EventRepository) Insert(ctx context.Context, eventType string, userEmail *string, payload models.Payload) (int64, time.Time, error) {
	query := `
		INSERT INTO events (event_type, user_email, payload)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	var (
		id        int64
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query, eventType, userEmail, payload).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to insert event: %w", err)
	}

	r.logger.Debug("event inserted",
		zap.Int64("id", id),
		zap.String("event_type", eventType))

	return id, createdAt.UTC(), nil
}

// ListRecent retrieves the most recent events in descending id order
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]*models.Event, error) {
	query := `
		SELECT id, event_type, user_email, payload, created_at
		FROM events
		ORDER BY id DESC
		LIMIT $1
	`

	return r.queryEvents(ctx, query, limit)
}

// ListByNotebook retrieves all events for one notebook. Ordering is
// user_email, created_at, id: the trailing id makes the sort deterministic
// when two events from the same user share a timestamp.
func (r *EventRepository) ListByNotebook(ctx context.Context, notebook string) ([]*models.Event, error) {
	query := `
		SELECT id, event_type, user_email, payload, created_at
		FROM events
		WHERE payload->>'notebook' = $1
		ORDER BY user_email, created_at, id
	`

	return r.queryEvents(ctx, query, notebook)
}

// ListAll retrieves every event in ascending id order
func (r *EventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, event_type, user_email, payload, created_at
		FROM events
		ORDER BY id
	`

	return r.queryEvents(ctx, query)
}

// NotebookCounts retrieves distinct notebook names and their event counts,
// busiest notebook first. Events whose payload lacks a notebook key never
// appear here. The IS NOT NULL filter (rather than the ? key-existence
// operator) also excludes payloads carrying an explicit JSON null notebook,
// which would otherwise scan as SQL NULL.
func (r *EventRepository) NotebookCounts(ctx context.Context) ([]*models.NotebookCount, error) {
	query := `
		SELECT payload->>'notebook' AS notebook, COUNT(*) AS count
		FROM events
		WHERE payload->>'notebook' IS NOT NULL
		GROUP BY payload->>'notebook'
		ORDER BY count DESC, notebook
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook counts: %w", err)
	}
	defer rows.Close()

	var counts []*models.NotebookCount
	for rows.Next() {
		nc := &models.NotebookCount{}
		if err := rows.Scan(&nc.Notebook, &nc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan notebook count: %w", err)
		}
		counts = append(counts, nc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notebook count rows: %w", err)
	}

	return counts, nil
}

// queryEvents is a helper method to query multiple event rows
func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.UserEmail,
			&event.Payload,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.CreatedAt = event.CreatedAt.UTC()
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}
