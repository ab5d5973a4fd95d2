// Package audit keeps a diagnostic trail of fixture-served responses.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one fixture-served response.
type Event struct {
	ID       string
	Resource string
	Error    string
	At       time.Time
}

// NewEvent builds an event with a fresh ID.
func NewEvent(resource, errMsg string, at time.Time) Event {
	return Event{
		ID:       uuid.New().String(),
		Resource: resource,
		Error:    errMsg,
		At:       at,
	}
}

// Recorder persists fallback events. Record failures are logged by the
// caller, never surfaced to the request path.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Noop drops events, used when no database is configured.
type Noop struct{}

// Record does nothing.
func (Noop) Record(context.Context, Event) error { return nil }
