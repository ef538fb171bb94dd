package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the arbitrary structured document attached to an event. The
// store treats it as opaque JSON; only the dashboard renderer interprets
// the conventional keys ("notebook", "question", "response", "mode").
type Payload map[string]interface{}

// Value implements driver.Valuer so a Payload can be bound to a jsonb column
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner for reading a jsonb column back into a Payload
func (p *Payload) Scan(src interface{}) error {
	if src == nil {
		*p = Payload{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported payload source type %T", src)
	}
	return json.Unmarshal(data, p)
}

// String returns the payload value under key when it is a non-empty string.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Notebook returns the conventional "notebook" key when present.
func (p Payload) Notebook() (string, bool) {
	return p.String("notebook")
}

// Event represents one immutable recorded interaction. Rows are never
// updated or deleted; id order is insertion order.
type Event struct {
	ID        int64     `json:"id" db:"id"`
	EventType string    `json:"event_type" db:"event_type"`
	UserEmail *string   `json:"user_email,omitempty" db:"user_email"`
	Payload   Payload   `json:"payload" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// CreateEventRequest is the ingestion payload for POST /events.
// user_email is a pointer: absence is distinct from the empty string.
type CreateEventRequest struct {
	EventType string  `json:"event_type" validate:"required"`
	UserEmail *string `json:"user_email"`
	Payload   Payload `json:"payload"`
}

// NotebookCount is one row of the dashboard index: a notebook name and how
// many events carry it in their payload.
type NotebookCount struct {
	Notebook string `json:"notebook"`
	Count    int64  `json:"count"`
}
