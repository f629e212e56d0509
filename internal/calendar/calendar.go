package calendar

import (
	"context"
	"time"
)

// Event is what the shop's external calendar needs to know about a cita.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// Sync creates and removes external calendar events. Calls are best-effort:
// callers bound them with a timeout and log failures, never propagate them.
type Sync interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Disabled is used when no calendar integration is configured.
type Disabled struct{}

func (Disabled) CreateEvent(ctx context.Context, ev Event) (string, error) {
	return "", nil
}

func (Disabled) DeleteEvent(ctx context.Context, eventID string) error {
	return nil
}
