package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tamkeenai/careerd/internal/audit"
)

// Recorder implements audit.Recorder using PostgreSQL.
type Recorder struct {
	db *DB
}

// NewRecorder creates a new PostgreSQL fallback-event recorder.
func NewRecorder(db *DB) *Recorder {
	return &Recorder{db: db}
}

type eventRow struct {
	ID        string    `db:"id"`
	Resource  string    `db:"resource"`
	Error     string    `db:"error"`
	CreatedAt time.Time `db:"created_at"`
}

// Record persists a fallback event.
func (r *Recorder) Record(ctx context.Context, e audit.Event) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO fallback_events (id, resource, error, created_at)
		VALUES (:id, :resource, :error, :created_at)`,
		eventRow{
			ID:        e.ID,
			Resource:  e.Resource,
			Error:     e.Error,
			CreatedAt: e.At,
		})
	if err != nil {
		return fmt.Errorf("failed to insert fallback event: %w", err)
	}
	return nil
}

// Recent returns the most recent fallback events, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []eventRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, resource, error, created_at
		FROM fallback_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fallback events: %w", err)
	}

	events := make([]audit.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, audit.Event{
			ID:       row.ID,
			Resource: row.Resource,
			Error:    row.Error,
			At:       row.CreatedAt,
		})
	}
	return events, nil
}
